package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var ErrDocumentNotFound = errors.New("document not found")

// FileStore keeps rendered and signed agreement documents on disk under a
// single root directory. Refs are slash-separated relative paths.
type FileStore struct {
	root   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewFileStore(root string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document root %s: %w", root, err)
	}
	return &FileStore{root: root, logger: logger}, nil
}

func (fs *FileStore) path(ref string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid document ref %q", ref)
	}
	return filepath.Join(fs.root, clean), nil
}

// Save writes the document atomically: write to a temp file, then rename.
func (fs *FileStore) Save(ctx context.Context, ref string, data []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path, err := fs.path(ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", ref, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", ref, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize document %s: %w", ref, err)
	}

	fs.logger.Debug("document stored", zap.String("ref", ref), zap.Int("bytes", len(data)))
	return nil
}

func (fs *FileStore) Load(ctx context.Context, ref string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path, err := fs.path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read document %s: %w", ref, err)
	}
	return data, nil
}
