package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	randomization   = 0.5
	multiplier      = 2

	subscriberBuffer = 256
)

// Event — изменение строки наблюдаемой таблицы, как его прислал триггер.
// Reset означает, что слушатель переподключался и события могли быть потеряны:
// подписчик обязан перечитать свое состояние целиком, повторной доставки нет.
type Event struct {
	Table string          `json:"table"`
	Op    string          `json:"op"`
	Row   json.RawMessage `json:"row"`
	Reset bool            `json:"-"`
}

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

type subscriber struct {
	ch     chan Event
	table  string
	missed bool
}

// Listener держит выделенное соединение с Postgres в режиме LISTEN и
// раздает события подписчикам по таблицам.
type Listener struct {
	log    logger.Logger
	dsn    string
	tables []string

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

func New(log logger.Logger, dsn string, tables []string) *Listener {
	return &Listener{
		log:    log.With(logger.NewField("component", "notify")),
		dsn:    dsn,
		tables: tables,
		subs:   make(map[int]*subscriber),
	}
}

// Subscribe возвращает канал событий таблицы и функцию отписки. После вызова
// отписки канал закрывается и никакая фоновая работа подписчика не остается.
func (l *Listener) Subscribe(table string) (<-chan Event, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++

	sub := &subscriber{
		ch:    make(chan Event, subscriberBuffer),
		table: table,
	}
	l.subs[id] = sub

	unsubscribe := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if s, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, unsubscribe
}

// Run — блокирующий цикл слушателя. При обрыве соединения переподключается
// с backoff и рассылает Reset, так как пропущенные уведомления не повторяются.
func (l *Listener) Run(ctx context.Context) error {
	for {
		conn, err := l.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("notify listener connect: %w", err)
		}

		err = l.listen(ctx, conn)

		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if closeErr := conn.Close(closeCtx); closeErr != nil {
			l.log.Warn("failed to close listen connection",
				logger.NewField("error", closeErr),
			)
		}
		cancel()

		if ctx.Err() != nil {
			l.log.Warn("notification listener stopped (context cancelled)")
			return ctx.Err()
		}

		l.log.Error("notification connection lost, reconnecting",
			logger.NewField("error", err),
		)
		l.broadcastReset()
	}
}

func (l *Listener) connect(ctx context.Context) (*pgx.Conn, error) {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  0, // слушатель переподключается, пока жив контекст
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil,
	}
	retrier := backoff_adapter.New(retryConfig)

	var conn *pgx.Conn
	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		l.log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting notify connection")

		c, err := pgx.Connect(ctx, l.dsn)
		if err != nil {
			return err
		}

		for _, table := range l.tables {
			if _, err := c.Exec(ctx, "LISTEN "+channelName(table)); err != nil {
				closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				_ = c.Close(closeCtx)
				cancel()
				return fmt.Errorf("listen %s: %w", table, err)
			}
		}

		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.With(
		logger.NewField("attempts", attempt),
		logger.NewField("tables", l.tables),
	).Info("notification listener connected")
	return conn, nil
}

func (l *Listener) listen(ctx context.Context, conn *pgx.Conn) error {
	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event Event
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			l.log.Error("bad notification payload",
				logger.NewField("channel", notification.Channel),
				logger.NewField("error", err),
			)
			continue
		}

		l.dispatch(event)
	}
}

func (l *Listener) dispatch(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, sub := range l.subs {
		if sub.table != event.Table {
			continue
		}

		// После переполнения буфера подписчик сперва получает Reset:
		// его проекция уже неполна и обязана пересеяться.
		if sub.missed {
			select {
			case sub.ch <- Event{Table: sub.table, Reset: true}:
				sub.missed = false
			default:
				continue
			}
		}

		select {
		case sub.ch <- event:
		default:
			sub.missed = true
			l.log.Warn("subscriber buffer full, event dropped",
				logger.NewField("table", sub.table),
			)
		}
	}
}

func (l *Listener) broadcastReset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, sub := range l.subs {
		select {
		case sub.ch <- Event{Table: sub.table, Reset: true}:
			sub.missed = false
		default:
			sub.missed = true
		}
	}
}

func channelName(table string) string {
	return table + "_changed"
}
