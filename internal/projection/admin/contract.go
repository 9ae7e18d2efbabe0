//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_test
package admin

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/notify"
)

type Bus interface {
	Subscribe(table string) (<-chan notify.Event, func())
}

type OrderService interface {
	ListAll(ctx context.Context) ([]entities.Order, error)
}

type DeliveryService interface {
	ListAll(ctx context.Context) ([]entities.Delivery, error)
}
