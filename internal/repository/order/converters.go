package order

import (
	"encoding/json"
	"fmt"

	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var itemsDB []OrderItemDB
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

func FromDomainModify(o *entities.OrderModify) (*OrderModifyDB, error) {
	if o == nil {
		return nil, nil
	}
	orderModifyDB := &OrderModifyDB{}

	if o.ID != nil {
		orderModifyDB.ID = o.ID
	}
	if o.UserID != nil {
		orderModifyDB.UserID = o.UserID
	}
	if o.Items != nil {
		itemsDB := make([]OrderItemDB, 0, len(*o.Items))
		for _, it := range *o.Items {
			itemsDB = append(itemsDB, OrderItemDB{
				ItemID:    it.ItemID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		raw, err := json.Marshal(itemsDB)
		if err != nil {
			return nil, fmt.Errorf("marshal order items: %w", err)
		}
		orderModifyDB.Items = raw
	}
	if o.TotalAmount != nil {
		orderModifyDB.TotalAmount = o.TotalAmount
	}
	if o.Status != nil {
		status := o.Status.String()
		orderModifyDB.Status = &status
	}
	if o.PaymentStatus != nil {
		paymentStatus := o.PaymentStatus.String()
		orderModifyDB.PaymentStatus = &paymentStatus
	}
	if o.Address != nil {
		orderModifyDB.Address = o.Address
	}
	if o.Notes != nil {
		orderModifyDB.Notes = o.Notes
	}
	if o.CreatedAt != nil {
		orderModifyDB.CreatedAt = o.CreatedAt
	}

	return orderModifyDB, nil
}
