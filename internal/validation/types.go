package validation

// SubmissionRules is the rule view of an order submission. It mirrors the
// fields the order form marks as required.
type SubmissionRules struct {
	Name   string   `json:"name" validate:"required"`
	Number string   `json:"number" validate:"required"`
	Mode   string   `json:"mode" validate:"required,dining_mode"`
	Items  []string `json:"items" validate:"required,min=1"`
}
