package delivery_feed_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/service/delivery"
	"dispatch/internal/service/earnings"
	"dispatch/pkg/logger"
)

type Handler struct {
	log             handlerLogger
	deliveryService DeliveryService
	earningsService EarningsService
}

func New(log handlerLogger, deliveryService DeliveryService, earningsService EarningsService) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:             handlerLog,
		deliveryService: deliveryService,
		earningsService: earningsService,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	partnerID := r.URL.Query().Get("partner_ID")

	mine, err := h.deliveryService.ListByPartner(r.Context(), partnerID)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidPartnerID),
			errors.Is(err, delivery.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	pool, err := h.deliveryService.ClaimablePool(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	summary, err := h.earningsService.Summary(r.Context(), partnerID, entities.EarningsAllTime)
	if err != nil {
		switch {
		case errors.Is(err, earnings.ErrInvalidPartnerID):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.PartnerFeedResponse{
		Pool:     make([]dto.Order, len(pool)),
		Mine:     make([]dto.Delivery, len(mine)),
		Earnings: make([]dto.Earning, len(summary.Earnings)),
		Balance:  summary.Total,
	}
	for i, o := range pool {
		response.Pool[i] = toOrderDTO(o)
	}
	for i, d := range mine {
		response.Mine[i] = toDeliveryDTO(d)
	}
	for i, e := range summary.Earnings {
		response.Earnings[i] = dto.Earning{
			EarningID: e.ID,
			OrderID:   e.OrderID,
			Earning:   e.Amount,
			CreatedAt: e.CreatedAt,
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
