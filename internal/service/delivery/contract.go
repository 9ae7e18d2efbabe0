//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	Claim(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
	Complete(ctx context.Context, deliveryID, partnerID string, deliveredAt time.Time) (*entities.Delivery, error)

	GetByID(ctx context.Context, id string) (*entities.Delivery, error)
	ListByPartner(ctx context.Context, partnerID string) ([]entities.Delivery, error)
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]entities.Delivery, error)
	List(ctx context.Context) ([]entities.Delivery, error)
	ClaimablePool(ctx context.Context) ([]entities.Order, error)
}

type OrderService interface {
	MarkDelivered(ctx context.Context, orderID string) (*entities.Order, error)
}

type Ledger interface {
	AppendEarning(ctx context.Context, earning entities.Earning) (*entities.Earning, error)
	IncrementBalance(ctx context.Context, userID string, amount int64) (int64, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
