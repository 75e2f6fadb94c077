package domain

// OrderStatus tracks an order through fulfillment.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderFulfilled  OrderStatus = "fulfilled"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInProgress, OrderFulfilled, OrderCancelled:
		return true
	}
	return false
}

// CommittedStatuses are the order states that still imply upcoming
// ingredient demand.
func CommittedStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderInProgress}
}

// InvoiceStatus tracks a supplier invoice through verification.
type InvoiceStatus string

const (
	InvoiceUploaded InvoiceStatus = "uploaded"
	InvoiceVerified InvoiceStatus = "verified"
	InvoiceRejected InvoiceStatus = "rejected"
)
