//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
	List(ctx context.Context, filter entities.OrderModify) ([]entities.Order, error)

	MarkPaid(ctx context.Context, orderID string, finalAmount int64) (*entities.Order, error)
	MarkDelivered(ctx context.Context, orderID string) (*entities.Order, error)
}
