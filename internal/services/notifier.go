package services

import (
	"context"
	"time"
)

// Notification is the outbound event emitted after each successful withdrawal
// mutation. The UI's notification bell consumes these out of band.
type Notification struct {
	Event    string    `json:"event"`
	RecordID string    `json:"record_id,omitempty"`
	UserID   string    `json:"user_id"`
	Status   string    `json:"status,omitempty"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

const (
	EventWithdrawalRequested = "withdrawal.requested"
	EventWithdrawalAccepted  = "withdrawal.accepted"
	EventWithdrawalRejected  = "withdrawal.rejected"
	EventWithdrawalCompleted = "withdrawal.completed"
	EventWithdrawalDeleted   = "withdrawal.deleted"
)

type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, notification Notification) error

func (f NotifierFunc) Notify(ctx context.Context, notification Notification) error {
	return f(ctx, notification)
}
