package ledger

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

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// AppendEarning добавляет запись о вознаграждении. Записи не изменяются и не
// удаляются, повтор по заказу отсекает уникальный индекс.
func (r *Repository) AppendEarning(ctx context.Context, earning entities.Earning) (*entities.Earning, error) {
	earningDB := FromDomainModify(&earning)

	query := `
		INSERT INTO delivery_earnings (id, partner_id, order_id, earning, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, partner_id, order_id, earning, created_at
	`

	var created EarningDB
	err := r.querier.QueryRow(
		ctx,
		query,
		earningDB.ID,
		earningDB.PartnerID,
		earningDB.OrderID,
		earningDB.Amount,
		earningDB.CreatedAt,
	).Scan(
		&created.ID,
		&created.PartnerID,
		&created.OrderID,
		&created.Amount,
		&created.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, delivery.ErrEarningDuplicate
		}
		return nil, fmt.Errorf("unexpected ledger repository append error: %w", err)
	}

	return ToDomain(&created), nil
}

// IncrementBalance атомарно увеличивает баланс кошелька партнера и возвращает
// новое значение. Строка кошелька заводится при первом начислении.
func (r *Repository) IncrementBalance(ctx context.Context, userID string, amount int64) (int64, error) {
	query := `
		INSERT INTO wallet (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET balance = wallet.balance + EXCLUDED.balance
		RETURNING balance
	`

	var balance int64
	err := r.querier.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("unexpected ledger repository increment error: %w", err)
	}

	return balance, nil
}

// GetBalance возвращает 0 для партнера без кошелька: баланс по инварианту
// равен сумме начислений, а их еще не было.
func (r *Repository) GetBalance(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT balance
		FROM wallet
		WHERE user_id = $1
	`

	var balance int64
	err := r.querier.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("unexpected ledger repository balance error: %w", err)
	}

	return balance, nil
}

// ListEarnings возвращает начисления партнера, новые первыми.
// since == nil означает выборку за все время.
func (r *Repository) ListEarnings(ctx context.Context, partnerID string, since *time.Time) ([]entities.Earning, error) {
	query := `
		SELECT id, partner_id, order_id, earning, created_at
		FROM delivery_earnings
		WHERE partner_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, partnerID, since)
	if err != nil {
		return nil, fmt.Errorf("unexpected ledger repository list error: %w", err)
	}
	defer rows.Close()

	var earnings []entities.Earning
	for rows.Next() {
		var earningDB EarningDB
		err := rows.Scan(
			&earningDB.ID,
			&earningDB.PartnerID,
			&earningDB.OrderID,
			&earningDB.Amount,
			&earningDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected ledger repository scan error: %w", err)
		}
		earnings = append(earnings, *ToDomain(&earningDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected ledger repository rows error: %w", err)
	}

	return earnings, nil
}
