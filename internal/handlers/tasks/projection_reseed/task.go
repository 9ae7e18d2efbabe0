package projection_reseed

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Board interface {
	Reseed(ctx context.Context) error
}

// ProjectionReseed периодически перечитывает админскую проекцию из
// хранилища. Страховка на случай пропущенных событий шины.
type ProjectionReseed struct {
	log      logger.Logger
	board    Board
	interval time.Duration
}

func NewProjectionReseed(log logger.Logger, board Board, interval time.Duration) *ProjectionReseed {
	return &ProjectionReseed{
		log:      log,
		board:    board,
		interval: interval,
	}
}

func (p *ProjectionReseed) TTL() time.Duration {
	return p.interval
}

func (p *ProjectionReseed) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	return p.board.Reseed(ctxWithTimeout)
}

func (p *ProjectionReseed) Info() string {
	return "projection reseed"
}
