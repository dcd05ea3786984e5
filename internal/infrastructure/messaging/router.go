// Package messaging implements the acceptance filter for cross-frame
// protocol messages.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/logging"
)

// Drop reasons reported by Stats.
var (
	ErrForeignOrigin      = errors.New("sender origin does not match document origin")
	ErrForeignApplication = errors.New("application identifier mismatch")
	ErrMalformed          = errors.New("malformed message")
	ErrMissingAction      = errors.New("message has no action")
)

// Stats counts router outcomes.
type Stats struct {
	Accepted uint64
	Dropped  uint64
}

// MessageRouter validates inbound messages and forwards accepted ones to a
// single handler. It never reports an error to the sender.
type MessageRouter struct {
	origin        string
	applicationID string
	handler       port.MessageHandler
	baseCtx       context.Context

	accepted atomic.Uint64
	dropped  atomic.Uint64
}

var _ port.MessageDispatcher = (*MessageRouter)(nil)

// NewMessageRouter creates a router accepting messages sent from origin and
// addressed to applicationID.
func NewMessageRouter(ctx context.Context, origin, applicationID string, handler port.MessageHandler) *MessageRouter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &MessageRouter{
		origin:        origin,
		applicationID: applicationID,
		handler:       handler,
		baseCtx:       ctx,
	}
}

// Dispatch implements port.MessageDispatcher.
func (r *MessageRouter) Dispatch(ctx context.Context, raw entity.RawMessage) {
	if ctx == nil {
		ctx = r.baseCtx
	}
	log := logging.FromContext(ctx).With().Str("component", "message-router").Logger()

	msg, err := r.accept(raw)
	if err != nil {
		r.dropped.Add(1)
		log.Debug().Err(err).Str("origin", raw.Origin).Int("len", len(raw.Data)).Msg("message dropped")
		return
	}
	r.accepted.Add(1)

	log.Debug().
		Str("action", string(msg.Action)).
		Str("source_frame", msg.SourceFrame).
		Msg("message accepted")

	if r.handler != nil {
		r.handler.HandleMessage(ctx, msg)
	}
}

// Stats returns a snapshot of the router counters.
func (r *MessageRouter) Stats() Stats {
	return Stats{Accepted: r.accepted.Load(), Dropped: r.dropped.Load()}
}

func (r *MessageRouter) accept(raw entity.RawMessage) (entity.ProtocolMessage, error) {
	if raw.Origin != r.origin {
		return entity.ProtocolMessage{}, ErrForeignOrigin
	}

	var wire entity.WireMessage
	if err := json.Unmarshal(raw.Data, &wire); err != nil {
		return entity.ProtocolMessage{}, errors.Join(ErrMalformed, err)
	}
	if wire.Application != r.applicationID {
		return entity.ProtocolMessage{}, ErrForeignApplication
	}
	if wire.Action == "" {
		return entity.ProtocolMessage{}, ErrMissingAction
	}
	return wire.Classify(), nil
}
