package chainaudit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Recorder writes a non-authoritative adoption record to an external audit
// ledger. Strictly best effort: callers fire it out of band and ignore
// failures.
type Recorder interface {
	RecordAdoption(ctx context.Context, requestID, animalID, adopterID string) error
}

// LogRecorder is the default ledger: it digests the record and logs it.
type LogRecorder struct {
	logger *zap.Logger
}

func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) RecordAdoption(ctx context.Context, requestID, animalID, adopterID string) error {
	record := fmt.Sprintf("%s|%s|%s|%d", requestID, animalID, adopterID, time.Now().UTC().Unix())
	digest := sha256.Sum256([]byte(record))

	r.logger.Info("adoption audit record",
		zap.String("request_id", requestID),
		zap.String("animal_id", animalID),
		zap.String("digest", hex.EncodeToString(digest[:])))
	return nil
}
