package main

import "github.com/imrishuroy/go-qr-orderform/internal/orders"

// Ticket is what the kitchen sees for one order read from the feed.
type Ticket struct {
	OrderID   string
	Timestamp string
	Customer  string
	Mode      string
	Packing   []string
	Lines     []TicketLine
	Amount    int64
	Note      string
}

// TicketLine is one grouped item on a ticket.
type TicketLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
}

// NewTicket groups the order's items and collects the set order-type flags.
func NewTicket(o orders.Order) Ticket {
	t := Ticket{
		OrderID:   o.OrderID,
		Timestamp: o.Timestamp,
		Customer:  o.Name,
		Mode:      o.Mode,
		Packing:   []string{},
		Lines:     []TicketLine{},
		Amount:    o.Amount,
		Note:      o.Note,
	}
	if o.OrderType.DineIn {
		t.Packing = append(t.Packing, "dinein")
	}
	if o.OrderType.Packaged {
		t.Packing = append(t.Packing, "packaged")
	}
	if o.OrderType.Container {
		t.Packing = append(t.Packing, "container")
	}

	// the feed carries no unit prices; only the order total is known
	for _, l := range orders.LineItems(o.Items, func(string) int64 { return 0 }) {
		t.Lines = append(t.Lines, TicketLine{Name: l.Name, Quantity: l.Quantity})
	}
	return t
}
