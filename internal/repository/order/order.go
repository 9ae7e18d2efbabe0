package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = "id, user_id, items, total_amount, status, payment_status, address, notes, created_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	orderModifyDB, err := FromDomainModify(&orderModifyEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, items, total_amount, status, payment_status, address, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + orderColumns

	var orderDB OrderDB
	err = r.querier.QueryRow(
		ctx,
		query,
		orderModifyDB.ID,
		orderModifyDB.UserID,
		orderModifyDB.Items,
		orderModifyDB.TotalAmount,
		orderModifyDB.Status,
		orderModifyDB.PaymentStatus,
		orderModifyDB.Address,
		orderModifyDB.Notes,
		orderModifyDB.CreatedAt,
	).Scan(
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
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrOrderConflict
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(&orderDB)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToDomain(&orderDB)
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.querier.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// List возвращает заказы по опциональному фильтру, для админской проекции.
func (r *Repository) List(ctx context.Context, filter entities.OrderModify) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns).
		From("orders")

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.PaymentStatus != nil {
		builder = builder.Where(sq.Eq{"payment_status": filter.PaymentStatus.String()})
	}
	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
	}

	builder = builder.OrderBy("created_at DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// MarkPaid переводит заказ placed -> paid одним условным UPDATE.
// Сумма сверяется в том же предикате, чтобы несовпадение не перевело заказ.
func (r *Repository) MarkPaid(ctx context.Context, orderID string, finalAmount int64) (*entities.Order, error) {
	query := `
		UPDATE orders
		SET status = 'paid',
		    payment_status = 'completed'
		WHERE id = $1
		  AND status = 'placed'
		  AND total_amount = $2
		RETURNING ` + orderColumns

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, orderID, finalAmount).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrInvalidTransition
		}
		return nil, fmt.Errorf("unexpected order repository mark paid error: %w", err)
	}

	return ToDomain(&orderDB)
}

// MarkDelivered переводит заказ paid -> delivered, вызывается из транзакции завершения доставки.
func (r *Repository) MarkDelivered(ctx context.Context, orderID string) (*entities.Order, error) {
	query := `
		UPDATE orders
		SET status = 'delivered'
		WHERE id = $1
		  AND status = 'paid'
		RETURNING ` + orderColumns

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrInvalidTransition
		}
		return nil, fmt.Errorf("unexpected order repository mark delivered error: %w", err)
	}

	return ToDomain(&orderDB)
}

func scanOrders(rows pgx.Rows) ([]entities.Order, error) {
	var orders []entities.Order
	for rows.Next() {
		var orderDB OrderDB
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
			return nil, fmt.Errorf("unexpected order repository scan error: %w", err)
		}

		orderDomain, err := ToDomain(&orderDB)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *orderDomain)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository rows error: %w", err)
	}

	return orders, nil
}
