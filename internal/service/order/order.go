package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"dispatch/internal/entities"
)

// Service реализует машину состояний заказа:
// (placed) -> оплата -> (paid) -> завершение доставки -> (delivered).
// Статус движется только вперед, любой другой переход — ошибка рассинхрона.
type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, userID string, items []entities.OrderItem, address, notes string) (*entities.Order, error) {
	if !isValidID(userID) {
		return nil, ErrInvalidUserID
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total int64
	for _, it := range items {
		if it.ItemID == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return nil, ErrInvalidItem
		}
		total += it.Quantity * it.UnitPrice
	}

	orderID := uuid.NewString()
	status := entities.OrderPlaced
	paymentStatus := entities.PaymentPending
	createdAt := time.Now().UTC()

	orderModify := entities.OrderModify{
		ID:            &orderID,
		UserID:        &userID,
		Items:         &items,
		TotalAmount:   &total,
		Status:        &status,
		PaymentStatus: &paymentStatus,
		Address:       &address,
		Notes:         &notes,
		CreatedAt:     &createdAt,
	}

	created, err := s.repository.Create(ctx, orderModify)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

// MarkPaid обрабатывает сигнал платежного шлюза. Переход выполняется одним
// условным UPDATE; при отказе предиката повторное чтение только уточняет
// причину для вызывающего, само состояние уже защищено хранилищем.
func (s *Service) MarkPaid(ctx context.Context, orderID string, finalAmount int64) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	paid, err := s.repository.MarkPaid(ctx, orderID, finalAmount)
	if err == nil {
		return paid, nil
	}
	if !errors.Is(err, ErrInvalidTransition) {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	current, getErr := s.repository.GetByID(ctx, orderID)
	if getErr != nil {
		return nil, fmt.Errorf("classify paid rejection: %w", getErr)
	}

	switch {
	case current.PaymentStatus == entities.PaymentCompleted:
		return current, ErrAlreadyPaid
	case current.Status == entities.OrderPlaced && current.TotalAmount != finalAmount:
		return nil, fmt.Errorf("%w: order total %d, gateway reported %d", ErrAmountMismatch, current.TotalAmount, finalAmount)
	default:
		return nil, ErrInvalidTransition
	}
}

// MarkDelivered вызывается сервисом доставки внутри транзакции завершения.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	delivered, err := s.repository.MarkDelivered(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("mark order delivered: %w", err)
	}
	return delivered, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	return s.repository.GetByID(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	if !isValidID(userID) {
		return nil, ErrInvalidUserID
	}
	return s.repository.ListByUser(ctx, userID)
}

// ListAll — полная выборка для админской проекции.
func (s *Service) ListAll(ctx context.Context) ([]entities.Order, error) {
	return s.repository.List(ctx, entities.OrderModify{})
}
