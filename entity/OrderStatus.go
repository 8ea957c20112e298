package entity

// Order statuses. The flow is strictly linear; Cancelled is terminal and only
// reachable before the store confirms.
const (
	StatusPendingPayment   = "pending_payment"
	StatusPaymentSubmitted = "payment_submitted"
	StatusConfirmed        = "confirmed"
	StatusReady            = "ready"
	StatusClaimed          = "claimed"
	StatusCancelled        = "cancelled"
)

// nextStatus maps each status to its single legal successor.
var nextStatus = map[string]string{
	StatusPendingPayment:   StatusPaymentSubmitted,
	StatusPaymentSubmitted: StatusConfirmed,
	StatusConfirmed:        StatusReady,
	StatusReady:            StatusClaimed,
}

// NextStatus returns the successor of from, or "" when from is terminal or
// unknown.
func NextStatus(from string) string {
	return nextStatus[from]
}

// CanCancel reports whether an order in the given status may still be
// cancelled. Once the store has confirmed, the order is committed.
func CanCancel(status string) bool {
	return status == StatusPendingPayment || status == StatusPaymentSubmitted
}

// ActiveStatuses are the statuses that count against a pickup-slot capacity.
func ActiveStatuses() []string {
	return []string{StatusPendingPayment, StatusPaymentSubmitted, StatusConfirmed, StatusReady}
}
