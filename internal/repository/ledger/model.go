package ledger

import "time"

type EarningDB struct {
	ID        string
	PartnerID string
	OrderID   string
	Amount    int64
	CreatedAt time.Time
}

type EarningModifyDB struct {
	ID        *string
	PartnerID *string
	OrderID   *string
	Amount    *int64
	CreatedAt *time.Time
}
