package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/delivery"
)

const deliveryColumns = "id, order_id, partner_id, status, created_at, delivered_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Claim создает доставку одним условным INSERT: строка появляется только если
// заказ оплачен и еще не развезен. Гонку параллельных претендентов разрешает
// уникальный индекс по order_id, нарушение которого трактуется как проигрыш
// арбитража, а не как фатальная ошибка.
func (r *Repository) Claim(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	deliveryModifyDB := FromDomainModify(&deliveryModify)

	query := `
		INSERT INTO deliveries (id, order_id, partner_id, status, created_at)
		SELECT $1, o.id, $2, $3, $4
		FROM orders o
		WHERE o.id = $5
		  AND o.payment_status = 'completed'
		  AND o.status = 'paid'
		RETURNING ` + deliveryColumns

	var deliveryDB DeliveryDB
	err := r.querier.QueryRow(
		ctx,
		query,
		deliveryModifyDB.ID,
		deliveryModifyDB.PartnerID,
		deliveryModifyDB.Status,
		deliveryModifyDB.CreatedAt,
		deliveryModifyDB.OrderID,
	).Scan(
		&deliveryDB.ID,
		&deliveryDB.OrderID,
		&deliveryDB.PartnerID,
		&deliveryDB.Status,
		&deliveryDB.CreatedAt,
		&deliveryDB.DeliveredAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, delivery.ErrAlreadyClaimed
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, delivery.ErrPartnerUnknown
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrOrderNotClaimable
		}
		return nil, fmt.Errorf("unexpected delivery repository claim error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE id = $1`

	var deliveryDB DeliveryDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&deliveryDB.ID,
		&deliveryDB.OrderID,
		&deliveryDB.PartnerID,
		&deliveryDB.Status,
		&deliveryDB.CreatedAt,
		&deliveryDB.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

// Complete переводит доставку accepted -> completed. Нулевой результат означает,
// что предикат не сошелся: чья это вина — разбирает сервис повторным чтением.
func (r *Repository) Complete(ctx context.Context, deliveryID, partnerID string, deliveredAt time.Time) (*entities.Delivery, error) {
	query := `
		UPDATE deliveries
		SET status = 'completed',
		    delivered_at = $3
		WHERE id = $1
		  AND partner_id = $2
		  AND status = 'accepted'
		RETURNING ` + deliveryColumns

	var deliveryDB DeliveryDB
	err := r.querier.QueryRow(ctx, query, deliveryID, partnerID, deliveredAt).Scan(
		&deliveryDB.ID,
		&deliveryDB.OrderID,
		&deliveryDB.PartnerID,
		&deliveryDB.Status,
		&deliveryDB.CreatedAt,
		&deliveryDB.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrCompleteNotApplied
		}
		return nil, fmt.Errorf("unexpected delivery repository complete error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

func (r *Repository) ListByPartner(ctx context.Context, partnerID string) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE partner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.querier.Query(ctx, query, partnerID)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

func (r *Repository) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE order_id = ANY($1)
		ORDER BY created_at DESC`

	rows, err := r.querier.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

func (r *Repository) List(ctx context.Context) ([]entities.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
		FROM deliveries
		ORDER BY created_at DESC`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

// ClaimablePool — оплаченные заказы без доставки, старые первыми.
func (r *Repository) ClaimablePool(ctx context.Context) ([]entities.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.items, o.total_amount, o.status, o.payment_status, o.address, o.notes, o.created_at
		FROM orders o
		WHERE o.payment_status = 'completed'
		  AND o.status = 'paid'
		  AND NOT EXISTS (
		      SELECT 1 FROM deliveries d WHERE d.order_id = o.id
		  )
		ORDER BY o.created_at ASC`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository pool error: %w", err)
	}
	defer rows.Close()

	var orders []entities.Order
	for rows.Next() {
		var orderDB claimableOrderDB
		err := rows.Scan(
			&orderDB.ID,
			&orderDB.UserID,
			&orderDB.Items,
			&orderDB.TotalAmount,
			&orderDB.Status,
			&orderDB.PaymentStatus,
			&orderDB.Address,
			&orderDB.Notes,
			&orderDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery repository pool scan error: %w", err)
		}

		orderDomain, err := toOrderDomain(&orderDB)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *orderDomain)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository pool rows error: %w", err)
	}

	return orders, nil
}

func scanDeliveries(rows pgx.Rows) ([]entities.Delivery, error) {
	var deliveries []entities.Delivery
	for rows.Next() {
		var deliveryDB DeliveryDB
		err := rows.Scan(
			&deliveryDB.ID,
			&deliveryDB.OrderID,
			&deliveryDB.PartnerID,
			&deliveryDB.Status,
			&deliveryDB.CreatedAt,
			&deliveryDB.DeliveredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery repository scan error: %w", err)
		}
		deliveries = append(deliveries, *ToDomain(&deliveryDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository rows error: %w", err)
	}

	return deliveries, nil
}
