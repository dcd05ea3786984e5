package port

import (
	"context"

	"github.com/bnema/previewr/internal/domain/entity"
)

// MessageDispatcher is the single entry point for inbound protocol messages.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, raw entity.RawMessage)
}

// MessageHandler consumes accepted, classified protocol messages.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg entity.ProtocolMessage)
}
