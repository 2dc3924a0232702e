package client

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Notifier surfaces transient progress and error notifications to the user.
type Notifier interface {
	// Loading shows a progress notification and returns its handle.
	Loading(message string) string
	Error(message string)
	Dismiss(id string)
}

// LogNotifier writes notifications as log entries.
type LogNotifier struct {
	logger zerolog.Logger
	seq    atomic.Int64
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Loading(message string) string {
	id := strconv.FormatInt(n.seq.Add(1), 10)
	n.logger.Info().Str("toast_id", id).Msg(message)
	return id
}

func (n *LogNotifier) Error(message string) {
	n.logger.Error().Msg(message)
}

func (n *LogNotifier) Dismiss(id string) {
	n.logger.Debug().Str("toast_id", id).Msg("dismissed")
}
