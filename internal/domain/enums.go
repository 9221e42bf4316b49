package domain

type OrderStatus string

const (
	OrderNew        OrderStatus = "new"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCanceled   OrderStatus = "canceled"
)

// ValidOrderStatuses is the canonical set of accepted order statuses.
var ValidOrderStatuses = map[OrderStatus]bool{
	OrderNew: true, OrderInProgress: true, OrderCompleted: true, OrderCanceled: true,
}

// IsTerminal reports whether the status ends an order's lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCanceled
}
