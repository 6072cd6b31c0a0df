package ports

import "context"

// EventPublisher emits domain events to the message broker. Publishing is
// best effort: the cascade logs and continues when it fails.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload any) error
}

// IntentClient creates a payment intent at the external gateway and returns
// its client secret.
type IntentClient interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}
