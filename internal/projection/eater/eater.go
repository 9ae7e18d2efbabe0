package eater

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/notify"
	"dispatch/internal/projection"
	"dispatch/pkg/logger"
)

// OrderView — заказ покупателя вместе с его доставкой, если она есть.
type OrderView struct {
	Order    entities.Order
	Delivery *entities.Delivery
}

// View — проекция заказов одного покупателя. Создается на время watch-сессии,
// кэш строго read-only: источником истины остается хранилище.
type View struct {
	log             logger.Logger
	bus             Bus
	orderService    OrderService
	deliveryService DeliveryService
	userID          string

	mu         sync.RWMutex
	orders     map[string]entities.Order
	deliveries map[string]entities.Delivery // ключ — order_id

	updates chan struct{}
}

func New(log logger.Logger, bus Bus, orderService OrderService, deliveryService DeliveryService, userID string) *View {
	return &View{
		log:             log.With(logger.NewField("projection", "eater")),
		bus:             bus,
		orderService:    orderService,
		deliveryService: deliveryService,
		userID:          userID,
		orders:          make(map[string]entities.Order),
		deliveries:      make(map[string]entities.Delivery),
		updates:         make(chan struct{}, 1),
	}
}

// Run сеет проекцию и применяет события до отмены контекста.
// Подписки снимаются при выходе, фоновой работы после Run не остается.
func (v *View) Run(ctx context.Context) error {
	orderEvents, unsubOrders := v.bus.Subscribe(projection.TableOrders)
	defer unsubOrders()
	deliveryEvents, unsubDeliveries := v.bus.Subscribe(projection.TableDelivery)
	defer unsubDeliveries()

	if err := v.seed(ctx); err != nil {
		return fmt.Errorf("seed eater view: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-orderEvents:
			if !ok {
				return nil
			}
			if err := v.applyOrderEvent(ctx, event); err != nil {
				return err
			}
		case event, ok := <-deliveryEvents:
			if !ok {
				return nil
			}
			if err := v.applyDeliveryEvent(ctx, event); err != nil {
				return err
			}
		}
	}
}

// Updates сигналит об изменении снапшота, сигналы схлопываются.
func (v *View) Updates() <-chan struct{} {
	return v.updates
}

func (v *View) Snapshot() []OrderView {
	v.mu.RLock()
	defer v.mu.RUnlock()

	views := make([]OrderView, 0, len(v.orders))
	for id, order := range v.orders {
		view := OrderView{Order: order}
		if d, ok := v.deliveries[id]; ok {
			delivery := d
			view.Delivery = &delivery
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Order.CreatedAt.After(views[j].Order.CreatedAt)
	})
	return views
}

// seed — начальное полное чтение, оно же восстановление после разрыва шины.
func (v *View) seed(ctx context.Context) error {
	orders, err := v.orderService.ListByUser(ctx, v.userID)
	if err != nil {
		return err
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	deliveries, err := v.deliveryService.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.orders = make(map[string]entities.Order, len(orders))
	for _, o := range orders {
		v.orders[o.ID] = o
	}
	v.deliveries = make(map[string]entities.Delivery, len(deliveries))
	for _, d := range deliveries {
		v.deliveries[d.OrderID] = d
	}
	v.mu.Unlock()

	v.notifyUpdate()
	return nil
}

func (v *View) applyOrderEvent(ctx context.Context, event notify.Event) error {
	if event.Reset {
		return v.reseed(ctx)
	}

	order, err := projection.DecodeOrder(event.Row)
	if err != nil {
		v.log.Warn("skip malformed order event", logger.NewField("error", err))
		return nil
	}
	if order.UserID != v.userID {
		return nil
	}

	v.mu.Lock()
	if event.Op == notify.OpDelete {
		delete(v.orders, order.ID)
	} else {
		// Строка заменяется целиком, частичных патчей не бывает.
		v.orders[order.ID] = *order
	}
	v.mu.Unlock()

	v.notifyUpdate()
	return nil
}

func (v *View) applyDeliveryEvent(ctx context.Context, event notify.Event) error {
	if event.Reset {
		return v.reseed(ctx)
	}

	delivery, err := projection.DecodeDelivery(event.Row)
	if err != nil {
		v.log.Warn("skip malformed delivery event", logger.NewField("error", err))
		return nil
	}

	v.mu.Lock()
	_, relevant := v.orders[delivery.OrderID]
	if relevant {
		if event.Op == notify.OpDelete {
			delete(v.deliveries, delivery.OrderID)
		} else {
			v.deliveries[delivery.OrderID] = *delivery
		}
	}
	v.mu.Unlock()

	if relevant {
		v.notifyUpdate()
	}
	return nil
}

// reseed закрывает пропуск после разрыва шины. Неудача роняет Run: сессия
// завершается, переподключившийся клиент засеется заново из хранилища —
// продолжать накатывать события на заведомо дырявый снапшот нельзя.
func (v *View) reseed(ctx context.Context) error {
	if err := v.seed(ctx); err != nil {
		v.log.Error("reseed after bus gap failed", logger.NewField("error", err))
		return fmt.Errorf("reseed eater view: %w", err)
	}
	return nil
}

func (v *View) notifyUpdate() {
	select {
	case v.updates <- struct{}{}:
	default:
	}
}
