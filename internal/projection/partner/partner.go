package partner

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

// Snapshot — то, что видит партнер: пул доступных заказов,
// свои доставки и текущий баланс кошелька.
type Snapshot struct {
	Pool     []entities.Order
	Mine     []entities.Delivery
	Earnings []entities.Earning
	Balance  int64
}

// Feed — проекция ленты одного партнера. Живет в рамках watch-сессии.
type Feed struct {
	log             logger.Logger
	bus             Bus
	deliveryService DeliveryService
	earningsService EarningsService
	partnerID       string

	mu       sync.RWMutex
	pool     map[string]entities.Order    // ключ — order_id
	claimed  map[string]struct{}          // order_id, по которым уже есть доставка
	mine     map[string]entities.Delivery // ключ — delivery_id
	earnings map[string]entities.Earning  // ключ — earning id
	balance  int64

	updates chan struct{}
}

func New(log logger.Logger, bus Bus, deliveryService DeliveryService, earningsService EarningsService, partnerID string) *Feed {
	return &Feed{
		log:             log.With(logger.NewField("projection", "partner")),
		bus:             bus,
		deliveryService: deliveryService,
		earningsService: earningsService,
		partnerID:       partnerID,
		pool:            make(map[string]entities.Order),
		claimed:         make(map[string]struct{}),
		mine:            make(map[string]entities.Delivery),
		earnings:        make(map[string]entities.Earning),
		updates:         make(chan struct{}, 1),
	}
}

func (f *Feed) Run(ctx context.Context) error {
	orderEvents, unsubOrders := f.bus.Subscribe(projection.TableOrders)
	defer unsubOrders()
	deliveryEvents, unsubDeliveries := f.bus.Subscribe(projection.TableDelivery)
	defer unsubDeliveries()
	earningEvents, unsubEarnings := f.bus.Subscribe(projection.TableEarnings)
	defer unsubEarnings()
	walletEvents, unsubWallet := f.bus.Subscribe(projection.TableWallet)
	defer unsubWallet()

	if err := f.seed(ctx); err != nil {
		return fmt.Errorf("seed partner feed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-orderEvents:
			if !ok {
				return nil
			}
			if err := f.applyOrderEvent(ctx, event); err != nil {
				return err
			}
		case event, ok := <-deliveryEvents:
			if !ok {
				return nil
			}
			if err := f.applyDeliveryEvent(ctx, event); err != nil {
				return err
			}
		case event, ok := <-earningEvents:
			if !ok {
				return nil
			}
			if err := f.applyEarningEvent(ctx, event); err != nil {
				return err
			}
		case event, ok := <-walletEvents:
			if !ok {
				return nil
			}
			if err := f.applyWalletEvent(ctx, event); err != nil {
				return err
			}
		}
	}
}

// Updates сигналит об изменении снапшота, сигналы схлопываются.
func (f *Feed) Updates() <-chan struct{} {
	return f.updates
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snap := Snapshot{
		Pool:     make([]entities.Order, 0, len(f.pool)),
		Mine:     make([]entities.Delivery, 0, len(f.mine)),
		Earnings: make([]entities.Earning, 0, len(f.earnings)),
		Balance:  f.balance,
	}
	for _, o := range f.pool {
		snap.Pool = append(snap.Pool, o)
	}
	for _, d := range f.mine {
		snap.Mine = append(snap.Mine, d)
	}
	for _, e := range f.earnings {
		snap.Earnings = append(snap.Earnings, e)
	}

	// Пул — от старых к новым, чтобы давно ждущие заказы были сверху.
	sort.Slice(snap.Pool, func(i, j int) bool {
		return snap.Pool[i].CreatedAt.Before(snap.Pool[j].CreatedAt)
	})
	sort.Slice(snap.Mine, func(i, j int) bool {
		return snap.Mine[i].CreatedAt.After(snap.Mine[j].CreatedAt)
	})
	sort.Slice(snap.Earnings, func(i, j int) bool {
		return snap.Earnings[i].CreatedAt.After(snap.Earnings[j].CreatedAt)
	})
	return snap
}

func (f *Feed) seed(ctx context.Context) error {
	pool, err := f.deliveryService.ClaimablePool(ctx)
	if err != nil {
		return err
	}

	mine, err := f.deliveryService.ListByPartner(ctx, f.partnerID)
	if err != nil {
		return err
	}

	summary, err := f.earningsService.Summary(ctx, f.partnerID, entities.EarningsAllTime)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.pool = make(map[string]entities.Order, len(pool))
	for _, o := range pool {
		f.pool[o.ID] = o
	}
	f.claimed = make(map[string]struct{})
	f.mine = make(map[string]entities.Delivery, len(mine))
	for _, d := range mine {
		f.mine[d.ID] = d
		f.claimed[d.OrderID] = struct{}{}
	}
	f.earnings = make(map[string]entities.Earning, len(summary.Earnings))
	for _, e := range summary.Earnings {
		f.earnings[e.ID] = e
	}
	f.balance = summary.Total
	f.mu.Unlock()

	f.notifyUpdate()
	return nil
}

// applyOrderEvent держит пул в актуальном состоянии: заказ попадает в пул,
// когда он оплачен и по нему еще не наблюдалась доставка.
func (f *Feed) applyOrderEvent(ctx context.Context, event notify.Event) error {
	if event.Reset {
		return f.reseed(ctx)
	}

	order, err := projection.DecodeOrder(event.Row)
	if err != nil {
		f.log.Warn("skip malformed order event", logger.NewField("error", err))
		return nil
	}

	f.mu.Lock()
	claimable := event.Op != notify.OpDelete &&
		order.Status == entities.OrderPaid &&
		order.PaymentStatus == entities.PaymentCompleted
	if _, taken := f.claimed[order.ID]; claimable && !taken {
		f.pool[order.ID] = *order
	} else {
		delete(f.pool, order.ID)
	}
	f.mu.Unlock()

	f.notifyUpdate()
	return nil
}

// applyDeliveryEvent убирает заказ из пула при любой вставке доставки,
// независимо от того, кто из партнеров ее выиграл.
func (f *Feed) applyDeliveryEvent(ctx context.Context, event notify.Event) error {
	if event.Reset {
		return f.reseed(ctx)
	}

	delivery, err := projection.DecodeDelivery(event.Row)
	if err != nil {
		f.log.Warn("skip malformed delivery event", logger.NewField("error", err))
		return nil
	}

	f.mu.Lock()
	if event.Op == notify.OpDelete {
		delete(f.claimed, delivery.OrderID)
		delete(f.mine, delivery.ID)
	} else {
		f.claimed[delivery.OrderID] = struct{}{}
		delete(f.pool, delivery.OrderID)
		if delivery.PartnerID == f.partnerID {
			f.mine[delivery.ID] = *delivery
		}
	}
	f.mu.Unlock()

	f.notifyUpdate()
	return nil
}

func (f *Feed) applyEarningEvent(ctx context.Context, event notify.Event) error {
	if event.Reset {
		return f.reseed(ctx)
	}

	earning, err := projection.DecodeEarning(event.Row)
	if err != nil {
		f.log.Warn("skip malformed earning event", logger.NewField("error", err))
		return nil
	}
	if earning.PartnerID != f.partnerID {
		return nil
	}

	f.mu.Lock()
	if event.Op == notify.OpDelete {
		delete(f.earnings, earning.ID)
	} else {
		f.earnings[earning.ID] = *earning
	}
	f.mu.Unlock()

	f.notifyUpdate()
	return nil
}

func (f *Feed) applyWalletEvent(ctx context.Context, event notify.Event) error {
	if event.Reset {
		return f.reseed(ctx)
	}

	wallet, err := projection.DecodeWallet(event.Row)
	if err != nil {
		f.log.Warn("skip malformed wallet event", logger.NewField("error", err))
		return nil
	}
	if wallet.UserID != f.partnerID {
		return nil
	}

	f.mu.Lock()
	f.balance = wallet.Balance
	f.mu.Unlock()

	f.notifyUpdate()
	return nil
}

// reseed закрывает пропуск после разрыва шины. Неудача роняет Run: сессия
// завершается, переподключившийся клиент засеется заново из хранилища —
// продолжать накатывать события на заведомо дырявый снапшот нельзя.
func (f *Feed) reseed(ctx context.Context) error {
	if err := f.seed(ctx); err != nil {
		f.log.Error("reseed after bus gap failed", logger.NewField("error", err))
		return fmt.Errorf("reseed partner feed: %w", err)
	}
	return nil
}

func (f *Feed) notifyUpdate() {
	select {
	case f.updates <- struct{}{}:
	default:
	}
}
