package order_events_get

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/projection/eater"
	"dispatch/pkg/logger"
)

// Handler отдает заказы покупателя потоком server-sent events: полный
// снапшот на подключении и новый снапшот на каждое изменение.
type Handler struct {
	log             handlerLogger
	bus             Bus
	orderService    OrderService
	deliveryService DeliveryService
}

func New(log handlerLogger, bus Bus, orderService OrderService, deliveryService DeliveryService) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:             handlerLog,
		bus:             bus,
		orderService:    orderService,
		deliveryService: deliveryService,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_ID")
	if userID == "" {
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

	view := eater.New(h.log.With(), h.bus, h.orderService, h.deliveryService, userID)

	runErr := make(chan error, 1)
	go func() {
		runErr <- view.Run(ctx)
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
					logger.NewField("user_id", userID),
				).Error("eater view stopped")
			}
			return
		case <-view.Updates():
			if err := writeSnapshot(w, view.Snapshot()); err != nil {
				h.log.With(
					logger.NewField("error", err),
				).Warn("write SSE event")
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, views []eater.OrderView) error {
	response := make([]dto.OrderWithDelivery, len(views))
	for i, v := range views {
		response[i].Order = toOrderDTO(v.Order)
		if v.Delivery != nil {
			deliveryDTO := toDeliveryDTO(*v.Delivery)
			response[i].Delivery = &deliveryDTO
		}
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
