package payment_completed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	orderservice "dispatch/internal/service/order"
	"dispatch/pkg/logger"
)

const dedupScope = "payment.completed"

type Handler struct {
	orderService             Service
	dedup                    Dedup
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, dedup Dedup, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		orderService:             orderService,
		dedup:                    dedup,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("payment.completed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("payment.completed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event completedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("payment.completed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("event", event.EventID),
		logger.NewField("offset", message.Offset),
	)

	if event.EventID != "" {
		seen, err := h.dedup.Seen(ctx, dedupScope, event.EventID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				msgLog.With(
					logger.NewField("error", err),
				).Warn("payment.completed handler context cancelled, message will be reprocessed")
				return true
			}
			// Дедупликация недоступна — продолжаем, MarkPaid сам идемпотентен.
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed dedup check failed")
		} else if seen {
			msgLog.Info("payment.completed: duplicate event, skipped")
			sess.MarkMessage(message, "")
			return false
		}
	}

	msgLog.Info("payment.completed processing")

	order, err := h.orderService.MarkPaid(ctx, event.OrderID, event.FinalAmount)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, orderservice.ErrAlreadyPaid):
			// Эффект уже применен, событие можно считать обработанным.
			msgLog.Info("payment.completed: order already paid, skipped")
			h.markProcessed(ctx, msgLog, event.EventID)

		case errors.Is(err, orderservice.ErrAmountMismatch):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler amount mismatch for order")

		case errors.Is(err, orderservice.ErrOrderNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler unknown order")

		default:
			// Временный сбой хранилища: сообщение не коммитим, пусть придет еще раз.
			msgLog.With(
				logger.NewField("error", err),
			).Warn("payment.completed handler failed to process order, message will be reprocessed")
			return true
		}
		sess.MarkMessage(message, "")
		return false
	}

	// Пометка дедупликации ставится только после успешной записи в хранилище:
	// упавший MarkPaid оставляет событие непомеченным, и повторная доставка
	// обрабатывает его заново.
	h.markProcessed(ctx, msgLog, event.EventID)

	// новая дочка с актуальными полями
	msgLog = h.log.With(
		logger.NewField("order", order.ID),
		logger.NewField("status", order.Status.String()),
		logger.NewField("payment_status", order.PaymentStatus.String()),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("payment.completed: processed")

	sess.MarkMessage(message, "")
	return false
}

// markProcessed лучшая попытка: MarkPaid идемпотентен, так что потерянная
// пометка стоит лишь одного лишнего похода в хранилище при повторе.
func (h *Handler) markProcessed(ctx context.Context, msgLog logger.Logger, eventID string) {
	if eventID == "" {
		return
	}
	if err := h.dedup.Mark(ctx, dedupScope, eventID); err != nil {
		msgLog.With(
			logger.NewField("error", err),
		).Warn("payment.completed dedup mark failed")
	}
}
