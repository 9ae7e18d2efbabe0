package earnings_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/service/earnings"
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
	partnerID := r.URL.Query().Get("partner_ID")

	window := entities.EarningsWindowType(r.URL.Query().Get("window"))
	if window == "" {
		window = entities.EarningsAllTime
	}

	summary, err := h.service.Summary(r.Context(), partnerID, window)
	if err != nil {
		switch {
		case errors.Is(err, earnings.ErrInvalidPartnerID),
			errors.Is(err, earnings.ErrInvalidWindow):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.EarningsResponse{
		PartnerID: summary.PartnerID,
		Window:    summary.Window.String(),
		Total:     summary.Total,
		Earnings:  make([]dto.Earning, len(summary.Earnings)),
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
