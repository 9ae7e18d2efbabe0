package admin

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/notify"
	"dispatch/internal/projection"
	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	reseedInitialInterval = 100 * time.Millisecond
	reseedMaxInterval     = 5 * time.Second
	reseedMaxElapsedTime  = 30 * time.Second
	reseedRandomization   = 0.5
	reseedMultiplier      = 2
)

// OrderView — заказ со всеми выигранными по нему доставками (по схеме их
// не больше одной, но проекция этого не требует).
type OrderView struct {
	Order    entities.Order
	Delivery *entities.Delivery
}

// Counters — сводные счетчики для шапки дашборда.
type Counters struct {
	Placed     int
	Paid       int
	Delivered  int
	InDelivery int
}

// Board — единственная на процесс проекция всех заказов для админки.
// Поднимается при старте сервиса и живет до его остановки.
type Board struct {
	log             logger.Logger
	bus             Bus
	orderService    OrderService
	deliveryService DeliveryService

	mu         sync.RWMutex
	orders     map[string]entities.Order
	deliveries map[string]entities.Delivery // ключ — order_id

	updates chan struct{}
}

func New(log logger.Logger, bus Bus, orderService OrderService, deliveryService DeliveryService) *Board {
	return &Board{
		log:             log.With(logger.NewField("projection", "admin")),
		bus:             bus,
		orderService:    orderService,
		deliveryService: deliveryService,
		orders:          make(map[string]entities.Order),
		deliveries:      make(map[string]entities.Delivery),
		updates:         make(chan struct{}, 1),
	}
}

func (b *Board) Run(ctx context.Context) error {
	orderEvents, unsubOrders := b.bus.Subscribe(projection.TableOrders)
	defer unsubOrders()
	deliveryEvents, unsubDeliveries := b.bus.Subscribe(projection.TableDelivery)
	defer unsubDeliveries()

	if err := b.seed(ctx); err != nil {
		return fmt.Errorf("seed admin board: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-orderEvents:
			if !ok {
				return nil
			}
			b.applyOrderEvent(ctx, event)
		case event, ok := <-deliveryEvents:
			if !ok {
				return nil
			}
			b.applyDeliveryEvent(ctx, event)
		}
	}
}

// Reseed принудительно перечитывает проекцию из хранилища. Вызывается
// фоновой задачей как страховка от пропущенных событий.
func (b *Board) Reseed(ctx context.Context) error {
	return b.seed(ctx)
}

// Updates сигналит об изменении снапшота, сигналы схлопываются.
func (b *Board) Updates() <-chan struct{} {
	return b.updates
}

func (b *Board) Snapshot() ([]OrderView, Counters) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	views := make([]OrderView, 0, len(b.orders))
	var counters Counters
	for id, order := range b.orders {
		view := OrderView{Order: order}
		if d, ok := b.deliveries[id]; ok {
			delivery := d
			view.Delivery = &delivery
			if delivery.Status == entities.DeliveryAccepted {
				counters.InDelivery++
			}
		}
		switch order.Status {
		case entities.OrderPlaced:
			counters.Placed++
		case entities.OrderPaid:
			counters.Paid++
		case entities.OrderDelivered:
			counters.Delivered++
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Order.CreatedAt.After(views[j].Order.CreatedAt)
	})
	return views, counters
}

func (b *Board) seed(ctx context.Context) error {
	orders, err := b.orderService.ListAll(ctx)
	if err != nil {
		return err
	}

	deliveries, err := b.deliveryService.ListAll(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.orders = make(map[string]entities.Order, len(orders))
	for _, o := range orders {
		b.orders[o.ID] = o
	}
	b.deliveries = make(map[string]entities.Delivery, len(deliveries))
	for _, d := range deliveries {
		b.deliveries[d.OrderID] = d
	}
	b.mu.Unlock()

	b.notifyUpdate()
	return nil
}

func (b *Board) applyOrderEvent(ctx context.Context, event notify.Event) {
	if event.Reset {
		b.reseed(ctx)
		return
	}

	order, err := projection.DecodeOrder(event.Row)
	if err != nil {
		b.log.Warn("skip malformed order event", logger.NewField("error", err))
		return
	}

	b.mu.Lock()
	if event.Op == notify.OpDelete {
		delete(b.orders, order.ID)
		delete(b.deliveries, order.ID)
	} else {
		b.orders[order.ID] = *order
	}
	b.mu.Unlock()

	b.notifyUpdate()
}

func (b *Board) applyDeliveryEvent(ctx context.Context, event notify.Event) {
	if event.Reset {
		b.reseed(ctx)
		return
	}

	delivery, err := projection.DecodeDelivery(event.Row)
	if err != nil {
		b.log.Warn("skip malformed delivery event", logger.NewField("error", err))
		return
	}

	b.mu.Lock()
	if event.Op == notify.OpDelete {
		delete(b.deliveries, delivery.OrderID)
	} else {
		b.deliveries[delivery.OrderID] = *delivery
	}
	b.mu.Unlock()

	b.notifyUpdate()
}

// reseed закрывает пропуск после разрыва шины. Разрыв обычно совпадает с
// проблемами хранилища, поэтому полное перечитывание ретраится. Проекция
// одна на процесс, ронять ее нельзя: если ретраи исчерпаны, пропуск закроет
// периодический вызов Reseed из фоновой задачи.
func (b *Board) reseed(ctx context.Context) {
	retryConfig := retrierconfig.Config{
		InitialInterval: reseedInitialInterval,
		MaxInterval:     reseedMaxInterval,
		MaxElapsedTime:  reseedMaxElapsedTime,
		Randomization:   reseedRandomization,
		Multiplier:      reseedMultiplier,
		ShouldRetry:     nil,
	}

	retrier := backoff_adapter.New(retryConfig)

	if err := retrier.ExecuteWithContext(ctx, b.seed); err != nil {
		b.log.Error("reseed after bus gap failed", logger.NewField("error", err))
	}
}

func (b *Board) notifyUpdate() {
	select {
	case b.updates <- struct{}{}:
	default:
	}
}
