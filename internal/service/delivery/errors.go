package delivery

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidPartnerID      = errors.New("invalid partner id")
	ErrInvalidDeliveryID     = errors.New("invalid delivery id")

	ErrAlreadyClaimed    = errors.New("order already claimed")
	ErrOrderNotClaimable = errors.New("order is not claimable")
	ErrPartnerUnknown    = errors.New("unknown delivery partner")
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrNotOwner          = errors.New("delivery belongs to another partner")
	ErrInvalidState      = errors.New("delivery is not in accepted state")
	ErrEarningDuplicate  = errors.New("earning already recorded for order")

	// ErrCompleteNotApplied — внутренний признак несработавшего условного
	// UPDATE, наружу не выходит: Complete уточняет его до NotOwner/InvalidState.
	ErrCompleteNotApplied = errors.New("complete update not applied")
)
