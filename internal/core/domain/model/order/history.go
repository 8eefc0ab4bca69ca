package order

import "time"

const (
	notePlaced   = "Order placed successfully"
	noteAssigned = "Order assigned to delivery partner"
	noteCanceled = "Order cancelled"
)

// StatusEntry is one append-only record of the status history.
type StatusEntry struct {
	Status    Status
	Timestamp time.Time
	Note      string
}

func defaultStatusNote(s Status) string {
	return "Order status updated to " + s.String()
}
