package delivery

import "time"

type DeliveryDB struct {
	ID          string
	OrderID     string
	PartnerID   string
	Status      string
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

// claimableOrderDB — строка заказа из пула, дублируется локально как у прочих
// межтабличных выборок репозитория.
type claimableOrderDB struct {
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

type orderItemDB struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type DeliveryModifyDB struct {
	ID          *string
	OrderID     *string
	PartnerID   *string
	Status      *string
	CreatedAt   *time.Time
	DeliveredAt *time.Time
}
