package entities

import "time"

// Earning — запись о вознаграждении за доставку, append-only.
type Earning struct {
	ID        string
	PartnerID string
	OrderID   string
	Amount    int64
	CreatedAt time.Time
}

type Wallet struct {
	UserID  string
	Balance int64
}

type EarningsWindowType string

const (
	EarningsAllTime EarningsWindowType = "all"
	EarningsWeek    EarningsWindowType = "week"
	EarningsMonth   EarningsWindowType = "month"
)

func (w EarningsWindowType) String() string {
	return string(w)
}

type EarningsSummary struct {
	PartnerID string
	Window    EarningsWindowType
	Total     int64
	Earnings  []Earning
}
