//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_dashboard_get_test
package admin_dashboard_get

import (
	"dispatch/internal/projection/admin"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Board interface {
	Snapshot() ([]admin.OrderView, admin.Counters)
}
