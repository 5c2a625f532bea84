package model

import "time"

// LedgerEventType identifies what happened on the ledger.
type LedgerEventType string

const (
	LedgerEventSaleRecorded      LedgerEventType = "sale.recorded"
	LedgerEventTransferCompleted LedgerEventType = "transfer.completed"
)

// LedgerEvent is published onto the event stream after a successful write so
// the exporter can mirror the change into the spreadsheet. The mirror is
// best-effort; the database remains authoritative.
type LedgerEvent struct {
	Type       LedgerEventType `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Sale       *Sale           `json:"sale,omitempty"`
	Transfers  []*Transfer     `json:"transfers,omitempty"`
	Transfer   *Transfer       `json:"transfer,omitempty"`
}

// Key returns the idempotency key for deduplicating exports.
func (e LedgerEvent) Key() string {
	switch e.Type {
	case LedgerEventSaleRecorded:
		if e.Sale != nil {
			return string(e.Type) + ":" + e.Sale.ID
		}
	case LedgerEventTransferCompleted:
		if e.Transfer != nil {
			return string(e.Type) + ":" + e.Transfer.ID
		}
	}
	return string(e.Type) + ":" + e.OccurredAt.Format(time.RFC3339Nano)
}
