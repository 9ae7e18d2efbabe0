package entities

import "time"

type Order struct {
	ID            string
	UserID        string
	Items         []OrderItem
	TotalAmount   int64
	Status        OrderStatusType
	PaymentStatus PaymentStatusType
	Address       string
	Notes         string
	CreatedAt     time.Time
}

// OrderItem хранит цену на момент заказа, из каталога не пересчитывается.
type OrderItem struct {
	ItemID    string
	Name      string
	Quantity  int64
	UnitPrice int64
}

type OrderStatusType string

const (
	OrderPlaced    OrderStatusType = "placed"
	OrderPaid      OrderStatusType = "paid"
	OrderDelivered OrderStatusType = "delivered"
)

func (s OrderStatusType) String() string {
	return string(s)
}

type PaymentStatusType string

const (
	PaymentPending   PaymentStatusType = "pending"
	PaymentCompleted PaymentStatusType = "completed"
)

func (s PaymentStatusType) String() string {
	return string(s)
}

type OrderModify struct {
	ID            *string
	UserID        *string
	Items         *[]OrderItem
	TotalAmount   *int64
	Status        *OrderStatusType
	PaymentStatus *PaymentStatusType
	Address       *string
	Notes         *string
	CreatedAt     *time.Time
}
