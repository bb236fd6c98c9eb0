package worker

import (
	"context"
	"log"
	"time"
)

type AgeRepository interface {
	IncrementPipelineAge(ctx context.Context) (int64, error)
}

// PipelineAgeWorker keeps the days counter of leads still in the pipeline in
// sync with wall-clock age. The bump query is idempotent per day, so a 1h
// tick just means the counter lands within an hour of midnight UTC.
type PipelineAgeWorker struct {
	repo         AgeRepository
	tickInterval time.Duration
}

func NewPipelineAgeWorker(repo AgeRepository) *PipelineAgeWorker {
	return &PipelineAgeWorker{
		repo:         repo,
		tickInterval: 1 * time.Hour,
	}
}

func (w *PipelineAgeWorker) Start(ctx context.Context) {
	log.Println("🕒 Pipeline Age Worker iniciado (tick 1h)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.bump(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Pipeline Age Worker encerrado")
			return
		case <-ticker.C:
			w.bump(ctx)
		}
	}
}

func (w *PipelineAgeWorker) bump(ctx context.Context) {
	updated, err := w.repo.IncrementPipelineAge(ctx)
	if err != nil {
		log.Printf("❌ Erro ao atualizar idade do pipeline: %v", err)
		return
	}
	if updated > 0 {
		log.Printf("✅ %d lead(s) com days incrementado", updated)
	}
}
