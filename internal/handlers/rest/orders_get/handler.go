package orders_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/service/order"
	"dispatch/pkg/logger"
)

type Handler struct {
	log             handlerLogger
	orderService    OrderService
	deliveryService DeliveryService
}

func New(log handlerLogger, orderService OrderService, deliveryService DeliveryService) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:             handlerLog,
		orderService:    orderService,
		deliveryService: deliveryService,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_ID")

	orderEntities, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidUserID),
			errors.Is(err, order.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	orderIDs := make([]string, len(orderEntities))
	for i, o := range orderEntities {
		orderIDs[i] = o.ID
	}

	deliveryEntities, err := h.deliveryService.ListByOrderIDs(r.Context(), orderIDs)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	deliveriesByOrder := make(map[string]entities.Delivery, len(deliveryEntities))
	for _, d := range deliveryEntities {
		deliveriesByOrder[d.OrderID] = d
	}

	response := make([]dto.OrderWithDelivery, len(orderEntities))
	for i, o := range orderEntities {
		response[i].Order = toOrderDTO(o)
		if d, ok := deliveriesByOrder[o.ID]; ok {
			deliveryDTO := toDeliveryDTO(d)
			response[i].Delivery = &deliveryDTO
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

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
