package domain

import "fmt"

// OrderStatus values are stored and transmitted verbatim; every consumer
// matches them case-sensitively.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusNew            OrderStatus = "NEW"
	StatusCooking        OrderStatus = "COOKING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusCompleted      OrderStatus = "COMPLETED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusExpired        OrderStatus = "EXPIRED"
)

// transitions is the full lifecycle graph. Terminal states have no outgoing
// edges; nothing ever leaves COMPLETED, CANCELLED or EXPIRED.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusNew, StatusCancelled, StatusExpired},
	StatusNew:            {StatusCooking, StatusCancelled},
	StatusCooking:        {StatusReadyForPickup},
	StatusReadyForPickup: {StatusCompleted},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusNew, StatusCooking, StatusReadyForPickup,
		StatusCompleted, StatusCancelled, StatusExpired:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Next returns the kitchen-side progression for an in-flight order.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusNew:
		return StatusCooking, true
	case StatusCooking:
		return StatusReadyForPickup, true
	case StatusReadyForPickup:
		return StatusCompleted, true
	}
	return "", false
}

// PaymentMethod selects the initial order status: QRIS orders start PENDING
// and run against the payment window, CASH orders go straight to NEW.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentQRIS:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// InitialStatus is PENDING for QRIS (awaiting out-of-band confirmation),
// NEW otherwise.
func (m PaymentMethod) InitialStatus() OrderStatus {
	if m == PaymentQRIS {
		return StatusPending
	}
	return StatusNew
}
