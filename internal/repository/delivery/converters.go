package delivery

import (
	"encoding/json"
	"fmt"

	"dispatch/internal/entities"
)

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}
	return &entities.Delivery{
		ID:          d.ID,
		OrderID:     d.OrderID,
		PartnerID:   d.PartnerID,
		Status:      entities.DeliveryStatusType(d.Status),
		CreatedAt:   d.CreatedAt,
		DeliveredAt: d.DeliveredAt,
	}
}

func FromDomainModify(d *entities.DeliveryModify) *DeliveryModifyDB {
	if d == nil {
		return nil
	}
	deliveryModifyDB := &DeliveryModifyDB{}

	if d.ID != nil {
		deliveryModifyDB.ID = d.ID
	}
	if d.OrderID != nil {
		deliveryModifyDB.OrderID = d.OrderID
	}
	if d.PartnerID != nil {
		deliveryModifyDB.PartnerID = d.PartnerID
	}
	if d.Status != nil {
		status := d.Status.String()
		deliveryModifyDB.Status = &status
	}
	if d.CreatedAt != nil {
		deliveryModifyDB.CreatedAt = d.CreatedAt
	}
	if d.DeliveredAt != nil {
		deliveryModifyDB.DeliveredAt = d.DeliveredAt
	}

	return deliveryModifyDB
}

func toOrderDomain(o *claimableOrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var itemsDB []orderItemDB
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &itemsDB); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}

	items := make([]entities.OrderItem, 0, len(itemsDB))
	for _, it := range itemsDB {
		items = append(items, entities.OrderItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return &entities.Order{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        entities.OrderStatusType(o.Status),
		PaymentStatus: entities.PaymentStatusType(o.PaymentStatus),
		Address:       o.Address,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}, nil
}
