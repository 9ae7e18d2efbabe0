package order

import "time"

type OrderDB struct {
	ID            string
	UserID        string
	Items         []byte
	TotalAmount   int64
	Status        string
	PaymentStatus string
	Address       string
	Notes         string
	CreatedAt     time.Time
}

type OrderModifyDB struct {
	ID            *string
	UserID        *string
	Items         []byte
	TotalAmount   *int64
	Status        *string
	PaymentStatus *string
	Address       *string
	Notes         *string
	CreatedAt     *time.Time
}

// OrderItemDB — снапшот позиции заказа, сериализуется в jsonb колонку items.
type OrderItemDB struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
