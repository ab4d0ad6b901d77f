package domain

import "time"

// OrderStatus represents the status of a consultation order
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// IsValid returns true for statuses known to the booking lifecycle
func (s OrderStatus) IsValid() bool {
	return s == OrderProcessing || s == OrderCompleted || s == OrderCancelled
}

// Order is the read-only view of a consultation order used by scheduling.
// NotaryID is nil once the notary has been deleted.
type Order struct {
	ID             int64
	NotaryID       *int64
	ConsultationAt time.Time
	Status         OrderStatus
}

// IsProcessing returns true if the order still holds its time slot
func (o *Order) IsProcessing() bool {
	return o.Status == OrderProcessing
}

// BelongsTo returns true if the order references the given notary
func (o *Order) BelongsTo(notaryID int64) bool {
	return o.NotaryID != nil && *o.NotaryID == notaryID
}
