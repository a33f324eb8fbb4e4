package handler

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
	"github.com/pfrederiksen/promiedos-alerts/internal/notifier"
)

// Source produces the current snapshot
type Source interface {
	FetchSnapshot(ctx context.Context) (*match.Snapshot, error)
}

// Formatter renders a snapshot as notification text
type Formatter interface {
	Format(s *match.Snapshot) string
}

// Delivery status values exposed to callers
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Delivery describes what happened to the notification
type Delivery struct {
	Attempted bool
	Sent      bool
	Err       error
}

// Status returns a short label for the delivery outcome
func (d Delivery) Status() string {
	switch {
	case d.Sent:
		return StatusSent
	case d.Attempted:
		return StatusFailed
	default:
		return StatusSkipped
	}
}

// Result is the outcome of one run
type Result struct {
	RunID    string
	Snapshot *match.Snapshot
	Message  string
	Delivery Delivery
}

// Handler wires a source, a formatter and a notifier into one pipeline
type Handler struct {
	source    Source
	formatter Formatter
	notifier  notifier.Notifier
	newRunID  func() string
}

// New creates a Handler
func New(source Source, formatter Formatter, n notifier.Notifier) *Handler {
	return &Handler{
		source:    source,
		formatter: formatter,
		notifier:  n,
		newRunID:  uuid.NewString,
	}
}

// Run executes one invocation.
// Only acquisition errors are returned; the delivery outcome is in Result.Delivery.
func (h *Handler) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: h.newRunID()}
	log := logger.With(logger.Fields{"run_id": result.RunID})

	snapshot, err := h.source.FetchSnapshot(ctx)
	if err != nil {
		logger.IncrCounter("handler.acquisition_failures")
		log.Error("Failed to acquire snapshot", nil, err)
		return nil, errors.Wrap(err, "acquiring snapshot")
	}
	result.Snapshot = snapshot

	result.Message = h.formatter.Format(snapshot)
	if result.Message == "" {
		log.Warn("Nothing to notify", logger.Fields{"leagues": snapshot.Len()})
	} else {
		result.Delivery = h.deliver(ctx, log, result.Message)
	}

	logger.RecordTiming("handler.run", time.Since(start))
	log.Info("Run complete", logger.Fields{
		"leagues":  snapshot.Len(),
		"matches":  snapshot.MatchCount(),
		"delivery": result.Delivery.Status(),
	})

	return result, nil
}

func (h *Handler) deliver(ctx context.Context, log *logger.Logger, message string) Delivery {
	d := Delivery{Attempted: true}
	if err := h.notifier.Notify(ctx, message); err != nil {
		logger.IncrCounter("handler.delivery_failures")
		log.Error("Notification delivery failed", nil, err)
		d.Err = err
		return d
	}
	d.Sent = true
	return d
}
