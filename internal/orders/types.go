package orders

// Dining modes offered on the order form.
const (
	ModeDineIn   = "Dine-In"
	ModeWalkIn   = "Walk-In"
	ModeDelivery = "Delivery"
	ModeInCar    = "In Car"
)

// DiningModes lists the accepted modes in form order.
var DiningModes = []string{ModeDineIn, ModeWalkIn, ModeDelivery, ModeInCar}

// PaymentUnpaid is the only payment status; no payment flow exists.
const PaymentUnpaid = "Unpaid"

// IDPrefix starts every order id.
const IDPrefix = "ORD-"

// TimestampLayout is the order timestamp format (UTC, second precision).
const TimestampLayout = "2006-01-02 15:04:05"

// Submission is the raw order form as posted by the browser. Every field is optional.
type Submission struct {
	Name          string `form:"name" json:"name"`
	Number        string `form:"number" json:"number"`
	Mode          string `form:"mode" json:"mode"`
	TypeDineIn    string `form:"order_type_dinein" json:"order_type_dinein"`
	TypePackaged  string `form:"order_type_packaged" json:"order_type_packaged"`
	TypeContainer string `form:"order_type_container" json:"order_type_container"`
	Items         string `form:"items" json:"items"` // JSON-encoded array of item names
	Note          string `form:"note" json:"note"`
}

// OrderType holds the independent packaging flags.
type OrderType struct {
	DineIn    bool `json:"dinein"`
	Packaged  bool `json:"packaged"`
	Container bool `json:"container"`
}

// Order is the record built for one submission. It is never stored or mutated after creation.
type Order struct {
	Name           string    `json:"name"`
	Number         string    `json:"number"`
	Mode           string    `json:"mode"`
	OrderType      OrderType `json:"order_type"`
	Items          []string  `json:"items"` // repetition encodes quantity
	PackagedItems  []string  `json:"packaged_items"`
	ContainerItems []string  `json:"container_items"`
	Amount         int64     `json:"amount"`
	PaymentStatus  string    `json:"payment_status"`
	PaymentMode    string    `json:"payment_mode"`
	Note           string    `json:"note"`
	OrderID        string    `json:"order_id"`
	Timestamp      string    `json:"timestamp"`
}

// Line is a grouped view of repeated items.
type Line struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// Result is a built order plus its two serialized forms.
type Result struct {
	Order   Order
	Pretty  []byte // indented JSON for display
	Compact []byte // QR payload
}
