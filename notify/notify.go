// Package notify models the UI-facing collaborators the engine's callers use:
// fire-and-forget toasts and user confirmation dialogs. The engine itself
// never calls these; caller code gates reward-granting actions on a Confirmer
// and surfaces outcomes through a Notifier.
package notify

import (
	"context"
	"log/slog"
)

// Severity classifies a toast message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier displays a message to the user. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, message string, severity Severity)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, message string, severity Severity)

func (f NotifierFunc) Notify(ctx context.Context, message string, severity Severity) {
	f(ctx, message, severity)
}

// Confirmer asks the user to confirm an action. A false result or an error
// means the caller must perform zero mutation.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, title, message string) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, title, message string) (bool, error) {
	return f(ctx, title, message)
}

// SlogNotifier writes toasts to a structured logger, the headless stand-in for
// a UI toast service.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) Notify(ctx context.Context, message string, severity Severity) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch severity {
	case SeverityError:
		logger.ErrorContext(ctx, message, "toast", severity)
	case SeverityWarning:
		logger.WarnContext(ctx, message, "toast", severity)
	default:
		logger.InfoContext(ctx, message, "toast", severity)
	}
}

// AutoConfirmer answers every confirmation with a fixed decision, for demos
// and tests.
type AutoConfirmer bool

func (a AutoConfirmer) Confirm(context.Context, string, string) (bool, error) {
	return bool(a), nil
}
