//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earnings_test
package earnings

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Ledger interface {
	ListEarnings(ctx context.Context, partnerID string, since *time.Time) ([]entities.Earning, error)
	GetBalance(ctx context.Context, userID string) (int64, error)
}
