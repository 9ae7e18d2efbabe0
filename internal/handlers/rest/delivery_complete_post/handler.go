package delivery_complete_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var completeDTO dto.DeliveryCompleteRequest
	err := json.NewDecoder(r.Body).Decode(&completeDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	receipt, err := h.service.Complete(r.Context(), completeDTO.DeliveryID, completeDTO.PartnerID)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrMissingRequiredFields),
			errors.Is(err, delivery.ErrInvalidDeliveryID),
			errors.Is(err, delivery.ErrInvalidPartnerID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, delivery.ErrNotOwner):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, delivery.ErrInvalidState),
			errors.Is(err, delivery.ErrEarningDuplicate):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.DeliveryCompleteResponse{
		DeliveryID:    receipt.DeliveryID,
		OrderID:       receipt.OrderID,
		PartnerID:     receipt.PartnerID,
		Earning:       receipt.EarningAmount,
		WalletBalance: receipt.WalletBalance,
		DeliveredAt:   receipt.DeliveredAt,
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
