package entities

import "time"

type Delivery struct {
	ID          string
	OrderID     string
	PartnerID   string
	Status      DeliveryStatusType
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

type DeliveryStatusType string

const (
	DeliveryAccepted  DeliveryStatusType = "accepted"
	DeliveryCompleted DeliveryStatusType = "completed"
)

func (s DeliveryStatusType) String() string {
	return string(s)
}

type DeliveryModify struct {
	ID          *string
	OrderID     *string
	PartnerID   *string
	Status      *DeliveryStatusType
	CreatedAt   *time.Time
	DeliveredAt *time.Time
}

// Receipt возвращается после успешного завершения доставки.
type Receipt struct {
	DeliveryID    string
	OrderID       string
	PartnerID     string
	EarningAmount int64
	WalletBalance int64
	DeliveredAt   time.Time
}
