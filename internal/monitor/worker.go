package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Worker drives periodic monitoring passes.
type Worker struct {
	service  *Service
	interval time.Duration
}

func NewWorker(service *Service, interval time.Duration) *Worker {
	return &Worker{
		service:  service,
		interval: interval,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("monitoring worker is stopped")

			return nil
		case <-time.After(w.interval):
			if err := w.service.CheckAll(ctx); err != nil {
				log.Error().Err(err).Msg("monitoring pass failed")
			}
		}
	}
}
