package delivery_feed_events_get

import (
	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
)

func toOrderDTO(o entities.Order) dto.Order {
	items := make([]dto.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = dto.OrderItem{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return dto.Order{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		Address:       o.Address,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
}

func toDeliveryDTO(d entities.Delivery) dto.Delivery {
	return dto.Delivery{
		DeliveryID:  d.ID,
		OrderID:     d.OrderID,
		PartnerID:   d.PartnerID,
		Status:      d.Status.String(),
		CreatedAt:   d.CreatedAt,
		DeliveredAt: d.DeliveredAt,
	}
}
