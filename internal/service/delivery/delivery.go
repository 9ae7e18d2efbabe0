package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"dispatch/internal/entities"
)

type Delivery struct {
	repository    Repository
	orderService  OrderService
	ledger        Ledger
	txManager     TxManager
	earningAmount int64
}

func New(
	repository Repository,
	orderService OrderService,
	ledger Ledger,
	txManager TxManager,
	earningAmount int64,
) *Delivery {
	return &Delivery{
		repository:    repository,
		orderService:  orderService,
		ledger:        ledger,
		txManager:     txManager,
		earningAmount: earningAmount,
	}
}

// Claim разыгрывает заказ между параллельными претендентами. Проверка
// "заказ еще свободен" на стороне клиента принципиально гоночная, поэтому
// арбитраж целиком отдан хранилищу: условный INSERT плюс уникальный индекс.
// Проигравший получает ErrAlreadyClaimed, это ожидаемый исход, не сбой.
func (d *Delivery) Claim(ctx context.Context, orderID, partnerID string) (*entities.Delivery, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(partnerID) {
		return nil, ErrInvalidPartnerID
	}

	deliveryID := uuid.NewString()
	status := entities.DeliveryAccepted
	createdAt := time.Now().UTC()

	deliveryModify := entities.DeliveryModify{
		ID:        &deliveryID,
		OrderID:   &orderID,
		PartnerID: &partnerID,
		Status:    &status,
		CreatedAt: &createdAt,
	}

	claimed, err := d.repository.Claim(ctx, deliveryModify)
	if err != nil {
		if errors.Is(err, ErrAlreadyClaimed) || errors.Is(err, ErrOrderNotClaimable) || errors.Is(err, ErrPartnerUnknown) {
			return nil, err
		}
		return nil, fmt.Errorf("claim delivery: %w", err)
	}
	return claimed, nil
}

// Complete завершает доставку единой транзакцией: статус доставки, статус
// заказа, запись в леджер и инкремент кошелька фиксируются все вместе или
// никак. Частично примененное завершение не должно быть наблюдаемо.
func (d *Delivery) Complete(ctx context.Context, deliveryID, partnerID string) (*entities.Receipt, error) {
	if !isValidID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}
	if !isValidID(partnerID) {
		return nil, ErrInvalidPartnerID
	}

	receipt := entities.Receipt{}
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		deliveredAt := time.Now().UTC()

		completed, err := d.repository.Complete(ctx, deliveryID, partnerID, deliveredAt)
		if err != nil {
			if errors.Is(err, ErrCompleteNotApplied) {
				return d.classifyCompleteRejection(ctx, deliveryID, partnerID)
			}
			return fmt.Errorf("complete delivery: %w", err)
		}

		if _, err := d.orderService.MarkDelivered(ctx, completed.OrderID); err != nil {
			return fmt.Errorf("mark order delivered: %w", err)
		}

		earning := entities.Earning{
			ID:        uuid.NewString(),
			PartnerID: partnerID,
			OrderID:   completed.OrderID,
			Amount:    d.earningAmount,
			CreatedAt: deliveredAt,
		}
		if _, err := d.ledger.AppendEarning(ctx, earning); err != nil {
			return fmt.Errorf("append earning: %w", err)
		}

		balance, err := d.ledger.IncrementBalance(ctx, partnerID, d.earningAmount)
		if err != nil {
			return fmt.Errorf("increment wallet balance: %w", err)
		}

		receipt = entities.Receipt{
			DeliveryID:    completed.ID,
			OrderID:       completed.OrderID,
			PartnerID:     partnerID,
			EarningAmount: d.earningAmount,
			WalletBalance: balance,
			DeliveredAt:   deliveredAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// classifyCompleteRejection уточняет, почему условный UPDATE не сработал.
func (d *Delivery) classifyCompleteRejection(ctx context.Context, deliveryID, partnerID string) error {
	current, err := d.repository.GetByID(ctx, deliveryID)
	if err != nil {
		return err
	}

	if current.PartnerID != partnerID {
		return ErrNotOwner
	}
	return ErrInvalidState
}

// ClaimablePool — оплаченные заказы без доставки, старые первыми.
func (d *Delivery) ClaimablePool(ctx context.Context) ([]entities.Order, error) {
	return d.repository.ClaimablePool(ctx)
}

func (d *Delivery) ListByPartner(ctx context.Context, partnerID string) ([]entities.Delivery, error) {
	if !isValidID(partnerID) {
		return nil, ErrInvalidPartnerID
	}
	return d.repository.ListByPartner(ctx, partnerID)
}

func (d *Delivery) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]entities.Delivery, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	return d.repository.ListByOrderIDs(ctx, orderIDs)
}

// ListAll — полная выборка для админской проекции.
func (d *Delivery) ListAll(ctx context.Context) ([]entities.Delivery, error) {
	return d.repository.List(ctx)
}
