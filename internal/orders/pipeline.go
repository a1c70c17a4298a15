package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/imrishuroy/go-qr-orderform/internal/qr"
)

// ErrEncode wraps any failure to turn an order into a scannable image.
var ErrEncode = errors.New("encode order image")

// Pricer resolves an item name to its unit price. *catalog.Catalog satisfies it.
type Pricer interface {
	Lookup(name string) int64
}

// ImageEncoder turns a payload into PNG bytes. *qr.Encoder satisfies it.
type ImageEncoder interface {
	Encode(ctx context.Context, payload []byte) ([]byte, error)
}

// Pipeline builds, prices and encodes orders. It holds no per-request state.
type Pipeline struct {
	prices  Pricer
	encoder ImageEncoder
	log     *slog.Logger
	nowFunc func() time.Time
	idFunc  func(time.Time) string
}

// NewPipeline returns a Pipeline pricing against prices and encoding with encoder.
func NewPipeline(prices Pricer, encoder ImageEncoder, log *slog.Logger) *Pipeline {
	return &Pipeline{
		prices:  prices,
		encoder: encoder,
		log:     log,
		nowFunc: time.Now,
		idFunc:  NewOrderID,
	}
}

// NewOrderID returns "ORD-<unix millis>-<8 random hex chars>".
// The random suffix keeps ids distinct when two orders share a millisecond.
func NewOrderID(now time.Time) string {
	suffix := uuid.New()
	return fmt.Sprintf("%s%d-%x", IDPrefix, now.UnixMilli(), suffix[:4])
}

// Submit builds an Order from a raw submission. Incomplete submissions are accepted:
// missing items price to zero and missing flags are unset.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (*Result, error) {
	now := p.nowFunc().UTC()
	items := ParseItems(sub.Items)

	o := Order{
		Name:   sub.Name,
		Number: sub.Number,
		Mode:   sub.Mode,
		OrderType: OrderType{
			DineIn:    FlagSet(sub.TypeDineIn),
			Packaged:  FlagSet(sub.TypePackaged),
			Container: FlagSet(sub.TypeContainer),
		},
		Items:          items,
		PackagedItems:  []string{},
		ContainerItems: []string{},
		Amount:         p.Amount(items),
		PaymentStatus:  PaymentUnpaid,
		Note:           sub.Note,
		OrderID:        p.idFunc(now),
		Timestamp:      now.Format(TimestampLayout),
	}
	if o.OrderType.Packaged {
		o.PackagedItems = append(o.PackagedItems, items...)
	}
	if o.OrderType.Container {
		o.ContainerItems = append(o.ContainerItems, items...)
	}

	pretty, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	compact, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	p.log.InfoContext(ctx, "order_received",
		slog.String("order_id", o.OrderID),
		slog.String("timestamp", o.Timestamp),
		slog.String("mode", o.Mode),
		slog.Int("item_count", len(o.Items)),
		slog.Int64("amount", o.Amount),
		slog.String("payment_status", o.PaymentStatus),
	)

	return &Result{Order: o, Pretty: pretty, Compact: compact}, nil
}

// Amount sums catalog prices over items. Unknown items add 0.
func (p *Pipeline) Amount(items []string) int64 {
	var sum int64
	for _, name := range items {
		sum += p.prices.Lookup(name)
	}
	return sum
}

// Lines groups the order's items for display, priced against the catalog.
func (p *Pipeline) Lines(o Order) []Line {
	return LineItems(o.Items, p.prices.Lookup)
}

// EncodeImage renders res.Compact as a QR code and returns it as a PNG data URI.
func (p *Pipeline) EncodeImage(ctx context.Context, res *Result) (string, error) {
	png, err := p.encoder.Encode(ctx, res.Compact)
	if err != nil {
		return "", fmt.Errorf("%w: order %s: %w", ErrEncode, res.Order.OrderID, err)
	}
	return qr.DataURI(png), nil
}
