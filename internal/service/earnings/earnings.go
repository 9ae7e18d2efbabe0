package earnings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
)

type Service struct {
	ledger Ledger
}

func New(ledger Ledger) *Service {
	return &Service{
		ledger: ledger,
	}
}

// Summary возвращает начисления партнера за окно. Для all итог берется из
// кошелька (по инварианту он равен сумме всех начислений), для календарных
// окон — суммированием выборки.
func (s *Service) Summary(ctx context.Context, partnerID string, window entities.EarningsWindowType) (*entities.EarningsSummary, error) {
	if strings.TrimSpace(partnerID) == "" {
		return nil, ErrInvalidPartnerID
	}

	since, err := windowStart(window, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	earnings, err := s.ledger.ListEarnings(ctx, partnerID, since)
	if err != nil {
		return nil, fmt.Errorf("list earnings: %w", err)
	}

	var total int64
	if window == entities.EarningsAllTime {
		total, err = s.ledger.GetBalance(ctx, partnerID)
		if err != nil {
			return nil, fmt.Errorf("get wallet balance: %w", err)
		}
	} else {
		for _, e := range earnings {
			total += e.Amount
		}
	}

	return &entities.EarningsSummary{
		PartnerID: partnerID,
		Window:    window,
		Total:     total,
		Earnings:  earnings,
	}, nil
}

// windowStart: неделя считается с понедельника, месяц с первого числа, UTC.
func windowStart(window entities.EarningsWindowType, now time.Time) (*time.Time, error) {
	switch window {
	case entities.EarningsAllTime:
		return nil, nil
	case entities.EarningsWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -(weekday - 1))
		return &start, nil
	case entities.EarningsMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &start, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, window)
	}
}
