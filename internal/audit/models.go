package audit

import "time"

// Action names an auditable VAT decision.
type Action string

const (
	ActionVATValidated       Action = "vat_validated"
	ActionExemptionEvaluated Action = "exemption_evaluated"
)

// Event is emitted from the validation engine to capture decisions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	AddressID int64     `json:"address_id,omitempty"`
	Country   string    `json:"country"`
	VATNumber string    `json:"vat_number"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
}

// Key partitions events by country and number so decisions for one VAT
// number stay ordered.
func (e Event) Key() string {
	return e.Country + ":" + e.VATNumber
}
