package service

import (
	"fmt"

	"github.com/comanda-pos/api/internal/database"
)

// PaymentMode decides where in the lifecycle a new order starts and whether
// stations hear about it right away.
type PaymentMode struct {
	name             database.PaymentMode
	initialStatus    database.OrderStatus
	dispatchOnCreate bool
}

var (
	// Postpago orders go straight to the stations; the tab is settled later.
	Postpago = PaymentMode{
		name:             database.PaymentModePOSTPAGO,
		initialStatus:    database.OrderStatusPENDING,
		dispatchOnCreate: true,
	}
	// Prepago orders wait in PENDING_PAYMENT until ConfirmPayment.
	Prepago = PaymentMode{
		name:             database.PaymentModePREPAGO,
		initialStatus:    database.OrderStatusPENDINGPAYMENT,
		dispatchOnCreate: false,
	}
)

func (m PaymentMode) Name() database.PaymentMode         { return m.name }
func (m PaymentMode) InitialStatus() database.OrderStatus { return m.initialStatus }
func (m PaymentMode) DispatchOnCreate() bool              { return m.dispatchOnCreate }

// PaymentModeOf maps a business's configured mode to its lifecycle policy.
func PaymentModeOf(mode database.PaymentMode) (PaymentMode, error) {
	switch mode {
	case database.PaymentModePOSTPAGO:
		return Postpago, nil
	case database.PaymentModePREPAGO:
		return Prepago, nil
	}
	return PaymentMode{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMode, mode)
}

// ParseOrderStatus accepts only the lifecycle states the schema knows about.
func ParseOrderStatus(s string) (database.OrderStatus, error) {
	switch st := database.OrderStatus(s); st {
	case database.OrderStatusPENDINGPAYMENT,
		database.OrderStatusPENDING,
		database.OrderStatusENPREPARACION,
		database.OrderStatusLISTOPARARECOGER,
		database.OrderStatusCOMPLETADO,
		database.OrderStatusCANCELADO:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
}
