package order

import (
	"fmt"

	"meatdelivery/internal/pkg/errs"
)

// PaymentMethod is how the customer pays. Only the flag is tracked; processing is external.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	Cash
	Online
	Card
)

var paymentMethodStrings = map[PaymentMethod]string{
	Cash:   "cash",
	Online: "online",
	Card:   "card",
}

// ParsePaymentMethod accepts "cash", "online" and "card". An empty string means cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return Cash, nil
	}
	for method, code := range paymentMethodStrings {
		if code == s {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a supported payment method", s))
}

func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodStrings[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if s, ok := paymentMethodStrings[m]; ok {
		return s
	}
	return "unknown"
}

// PaymentStatus tracks whether the order has been paid.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

var paymentStatusStrings = map[PaymentStatus]string{
	PaymentPending:  "pending",
	PaymentPaid:     "paid",
	PaymentFailed:   "failed",
	PaymentRefunded: "refunded",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, code := range paymentStatusStrings {
		if code == s {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a known payment status", s))
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentStatusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := paymentStatusStrings[s]; ok {
		return str
	}
	return "unknown"
}
