package admin_dashboard_get

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/pkg/logger"
)

// Handler отдает снапшот админской проекции. Обращений к хранилищу нет:
// проекция уже держит актуальную картину в памяти.
type Handler struct {
	log   handlerLogger
	board Board
}

func New(log handlerLogger, board Board) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:   handlerLog,
		board: board,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	views, counters := h.board.Snapshot()

	response := dto.AdminDashboardResponse{
		Counters: dto.DashboardCounters{
			Placed:     counters.Placed,
			Paid:       counters.Paid,
			Delivered:  counters.Delivered,
			InDelivery: counters.InDelivery,
		},
		Orders: make([]dto.OrderWithDelivery, len(views)),
	}
	for i, v := range views {
		response.Orders[i].Order = toOrderDTO(v.Order)
		if v.Delivery != nil {
			deliveryDTO := toDeliveryDTO(*v.Delivery)
			response.Orders[i].Delivery = &deliveryDTO
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(response)
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
