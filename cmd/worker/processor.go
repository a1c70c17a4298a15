package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-qr-orderform/internal/orders"
)

// ErrMissingOrderID marks a feed message that decoded but names no order.
var ErrMissingOrderID = errors.New("order_id missing")

// Processor turns order feed messages into kitchen tickets.
type Processor struct {
	log *slog.Logger
}

// NewProcessor creates a processor logging tickets to log.
func NewProcessor(log *slog.Logger) *Processor {
	return &Processor{log: log}
}

// Handle receives an SQS batch event and prints a ticket per message.
// The first bad message fails the batch so the runtime redelivers it.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	p.log.DebugContext(ctx, "batch_received", slog.Int("records", len(ev.Records)))
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.log.ErrorContext(ctx, "ticket_failed",
				slog.String("message_id", rec.MessageId),
				slog.String("error", err.Error()),
			)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var o orders.Order
	if err := json.Unmarshal([]byte(rec.Body), &o); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if o.OrderID == "" {
		return fmt.Errorf("message %s: %w", rec.MessageId, ErrMissingOrderID)
	}

	t := NewTicket(o)
	p.log.InfoContext(ctx, "ticket_printed",
		slog.String("order_id", t.OrderID),
		slog.String("timestamp", t.Timestamp),
		slog.String("customer", t.Customer),
		slog.String("mode", t.Mode),
		slog.Any("packing", t.Packing),
		slog.Any("lines", t.Lines),
		slog.Int64("amount", t.Amount),
		slog.String("note", t.Note),
	)
	return nil
}
