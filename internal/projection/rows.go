// Package projection декодирует снапшоты строк из событий шины уведомлений.
// Имена полей повторяют колонки таблиц: триггеры шлют row_to_json(NEW).
package projection

import (
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

const (
	TableOrders   = "orders"
	TableDelivery = "deliveries"
	TableEarnings = "delivery_earnings"
	TableWallet   = "wallet"
)

type orderRow struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Items         json.RawMessage `json:"items"`
	TotalAmount   int64           `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Address       *string         `json:"address"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

type orderItemRow struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type deliveryRow struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	PartnerID   string     `json:"partner_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

type earningRow struct {
	ID        string    `json:"id"`
	PartnerID string    `json:"partner_id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"earning"`
	CreatedAt time.Time `json:"created_at"`
}

type walletRow struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

func DecodeOrder(raw json.RawMessage) (*entities.Order, error) {
	var row orderRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode order row: %w", err)
	}

	var itemRows []orderItemRow
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &itemRows); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	items := make([]entities.OrderItem, 0, len(itemRows))
	for _, it := range itemRows {
		items = append(items, entities.OrderItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	order := &entities.Order{
		ID:            row.ID,
		UserID:        row.UserID,
		Items:         items,
		TotalAmount:   row.TotalAmount,
		Status:        entities.OrderStatusType(row.Status),
		PaymentStatus: entities.PaymentStatusType(row.PaymentStatus),
		CreatedAt:     row.CreatedAt,
	}
	if row.Address != nil {
		order.Address = *row.Address
	}
	if row.Notes != nil {
		order.Notes = *row.Notes
	}
	return order, nil
}

func DecodeDelivery(raw json.RawMessage) (*entities.Delivery, error) {
	var row deliveryRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode delivery row: %w", err)
	}
	return &entities.Delivery{
		ID:          row.ID,
		OrderID:     row.OrderID,
		PartnerID:   row.PartnerID,
		Status:      entities.DeliveryStatusType(row.Status),
		CreatedAt:   row.CreatedAt,
		DeliveredAt: row.DeliveredAt,
	}, nil
}

func DecodeEarning(raw json.RawMessage) (*entities.Earning, error) {
	var row earningRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode earning row: %w", err)
	}
	return &entities.Earning{
		ID:        row.ID,
		PartnerID: row.PartnerID,
		OrderID:   row.OrderID,
		Amount:    row.Amount,
		CreatedAt: row.CreatedAt,
	}, nil
}

func DecodeWallet(raw json.RawMessage) (*entities.Wallet, error) {
	var row walletRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode wallet row: %w", err)
	}
	return &entities.Wallet{
		UserID:  row.UserID,
		Balance: row.Balance,
	}, nil
}
