//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=eater_test
package eater

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/notify"
)

type Bus interface {
	Subscribe(table string) (<-chan notify.Event, func())
}

type OrderService interface {
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
}

type DeliveryService interface {
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]entities.Delivery, error)
}
