// Package notify routes user-facing messages to the logger.
package notify

import (
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/peek/internal/ui/style"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier reports results of reloads and silent refreshes.
type Notifier struct {
	logger ports.Logger
}

// NewNotifier creates a Notifier writing through the given logger.
func NewNotifier(logger ports.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify reports a successful outcome.
func (n *Notifier) Notify(msg string) {
	n.logger.Info(style.Check + " " + msg)
}

// NotifyError reports a failed outcome.
func (n *Notifier) NotifyError(err error) {
	if err == nil {
		return
	}
	n.logger.Error(err)
}
