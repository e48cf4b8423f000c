package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gateway is the payment provider adapter: create an intent up front,
// confirm it later. Confirm must be safe to call repeatedly.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int, currency string, metadata map[string]string) (intentID, clientSecret string, err error)
	Confirm(ctx context.Context, intentID string) (success bool, receiptRef string, err error)
}

// ConsoleGateway is the development stand-in for a real provider. Intents
// settle successfully unless their metadata carries outcome=fail.
type ConsoleGateway struct{}

func NewConsoleGateway() *ConsoleGateway {
	log.Println("Initialized Console Payment Gateway (Placeholder)")
	return &ConsoleGateway{}
}

func (g *ConsoleGateway) CreateIntent(ctx context.Context, amount int, currency string, metadata map[string]string) (string, string, error) {
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return "", "", ctx.Err()
	}

	intentID := "pi_" + uuid.NewString()
	if metadata["outcome"] == "fail" {
		intentID += "_fail"
	}

	fmt.Printf("\n--- PAYMENT_GATEWAY (CONSOLE) ---\n")
	fmt.Printf("Intent:   %s\n", intentID)
	fmt.Printf("Amount:   %d %s\n", amount, currency)
	fmt.Printf("Metadata: %v\n", metadata)
	fmt.Printf("--- END GATEWAY ---\n")

	return intentID, "secret_" + intentID, nil
}

func (g *ConsoleGateway) Confirm(ctx context.Context, intentID string) (bool, string, error) {
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return false, "", ctx.Err()
	}

	if strings.HasSuffix(intentID, "_fail") {
		log.Printf("PAYMENT_GATEWAY: intent %s declined", intentID)
		return false, "", nil
	}

	receiptRef := "rcpt_" + strings.TrimPrefix(intentID, "pi_")
	log.Printf("PAYMENT_GATEWAY: intent %s settled, receipt %s", intentID, receiptRef)
	return true, receiptRef, nil
}
