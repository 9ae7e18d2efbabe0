package delivery_feed_events_get

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/projection/partner"
	"dispatch/pkg/logger"
)

// Handler отдает ленту партнера потоком server-sent events: пул доступных
// заказов схлопывается у всех подписчиков, как только заказ выигран.
type Handler struct {
	log             handlerLogger
	bus             Bus
	deliveryService DeliveryService
	earningsService EarningsService
}

func New(log handlerLogger, bus Bus, deliveryService DeliveryService, earningsService EarningsService) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:             handlerLog,
		bus:             bus,
		deliveryService: deliveryService,
		earningsService: earningsService,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	partnerID := r.URL.Query().Get("partner_ID")
	if partnerID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	feed := partner.New(h.log.With(), h.bus, h.deliveryService, h.earningsService, partnerID)

	runErr := make(chan error, 1)
	go func() {
		runErr <- feed.Run(ctx)
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-runErr:
			if err != nil && ctx.Err() == nil {
				h.log.With(
					logger.NewField("error", err),
					logger.NewField("partner_id", partnerID),
				).Error("partner feed stopped")
			}
			return
		case <-feed.Updates():
			if err := writeSnapshot(w, feed.Snapshot()); err != nil {
				h.log.With(
					logger.NewField("error", err),
				).Warn("write SSE event")
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snap partner.Snapshot) error {
	response := dto.PartnerFeedResponse{
		Pool:     make([]dto.Order, len(snap.Pool)),
		Mine:     make([]dto.Delivery, len(snap.Mine)),
		Earnings: make([]dto.Earning, len(snap.Earnings)),
		Balance:  snap.Balance,
	}
	for i, o := range snap.Pool {
		response.Pool[i] = toOrderDTO(o)
	}
	for i, d := range snap.Mine {
		response.Mine[i] = toDeliveryDTO(d)
	}
	for i, e := range snap.Earnings {
		response.Earnings[i] = dto.Earning{
			EarningID: e.ID,
			OrderID:   e.OrderID,
			Earning:   e.Amount,
			CreatedAt: e.CreatedAt,
		}
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
