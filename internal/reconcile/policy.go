// Package reconcile decides what happens locally once a mutation's network
// outcome is known, and gates deletes behind an explicit confirmation.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Operation is the kind of mutation that produced an outcome.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

const (
	SummarySuccess = "Éxito"
	SummaryError   = "Error"

	SaveFailed   = "No se pudo guardar"
	DeleteFailed = "No se pudo eliminar"
)

// Messages are the kind-specific texts shown after a successful mutation.
type Messages struct {
	Created string
	Updated string
	Deleted string
	// Confirm is the question asked before a delete.
	Confirm string
	// LoadFailed is shown when the list cannot be reloaded.
	LoadFailed string
}

// Notification is a toast-like message for the presentation layer.
type Notification struct {
	Kind     string
	Severity Severity
	Summary  string
	Detail   string
}

// Notifier receives notifications.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Confirmer asks the user a yes/no question. Only an explicit yes returns true.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Decision is the local reaction to a mutation outcome.
type Decision struct {
	Notification Notification
	Reload       bool
	CloseDialog  bool
}

// Decide is the pure reconciliation rule: success reloads the list, closes
// the dialog for saves and reports the kind-specific text; failure does
// neither and reports a generic error.
func Decide(kind string, op Operation, msgs Messages, err error) Decision {
	if err != nil {
		detail := SaveFailed
		if op == OpDelete {
			detail = DeleteFailed
		}
		return Decision{
			Notification: Notification{Kind: kind, Severity: SeverityError, Summary: SummaryError, Detail: detail},
		}
	}

	var detail string
	switch op {
	case OpCreate:
		detail = msgs.Created
	case OpUpdate:
		detail = msgs.Updated
	case OpDelete:
		detail = msgs.Deleted
	}
	return Decision{
		Notification: Notification{Kind: kind, Severity: SeveritySuccess, Summary: SummarySuccess, Detail: detail},
		Reload:       true,
		CloseDialog:  op != OpDelete,
	}
}

// Policy applies Decide and talks to the user through a Notifier and a
// Confirmer.
type Policy struct {
	notifier  Notifier
	confirmer Confirmer
	logger    zerolog.Logger
}

func NewPolicy(notifier Notifier, confirmer Confirmer, logger zerolog.Logger) *Policy {
	return &Policy{notifier: notifier, confirmer: confirmer, logger: logger}
}

// OnMutationResult emits the notification for an outcome and returns the
// decision so the caller can reload or close its dialog.
func (p *Policy) OnMutationResult(kind string, op Operation, msgs Messages, err error) Decision {
	d := Decide(kind, op, msgs, err)
	if err != nil {
		p.logger.Warn().Err(err).Str("kind", kind).Str("op", op.String()).Msg("mutation failed")
	} else {
		p.logger.Info().Str("kind", kind).Str("op", op.String()).Msg("mutation succeeded")
	}
	p.emit(d.Notification)
	return d
}

// OnLoadFailure reports a list that could not be (re)loaded.
func (p *Policy) OnLoadFailure(kind string, msgs Messages, err error) {
	p.logger.Warn().Err(err).Str("kind", kind).Msg("list load failed")
	detail := msgs.LoadFailed
	if detail == "" {
		detail = "No se pudo cargar " + kind
	}
	p.emit(Notification{Kind: kind, Severity: SeverityError, Summary: SummaryError, Detail: detail})
}

// ConfirmBeforeDelete runs onAccept only when the user explicitly accepts.
// Declining is silent and reports false.
func (p *Policy) ConfirmBeforeDelete(ctx context.Context, prompt string, onAccept func() error) (bool, error) {
	if p.confirmer == nil || !p.confirmer.Confirm(ctx, prompt) {
		return false, nil
	}
	return true, onAccept()
}

func (p *Policy) emit(n Notification) {
	if p.notifier != nil {
		p.notifier.Notify(n)
	}
}
