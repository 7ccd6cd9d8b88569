package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/clause"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
)

const defaultRebuildWorkers = 8

// RebuildClauseIndexUseCase performs the idempotent full rebuild of the
// clause index: scan every chunk in every vertical, score matches,
// persist the snapshot and atomically swap the live index. Rebuilds are
// serialized; query serving keeps reading the previous index meanwhile.
type RebuildClauseIndexUseCase struct {
	source  ports.ChunkSource
	store   ports.ClauseIndexStore
	holder  *ClauseIndexHolder
	builder *clause.Builder
	workers int
	logger  *slog.Logger

	mu sync.Mutex
}

func NewRebuildClauseIndexUseCase(
	source ports.ChunkSource,
	store ports.ClauseIndexStore,
	holder *ClauseIndexHolder,
	builder *clause.Builder,
	workers int,
	logger *slog.Logger,
) *RebuildClauseIndexUseCase {
	if builder == nil {
		builder = clause.NewDefaultBuilder()
	}
	if workers <= 0 {
		workers = defaultRebuildWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RebuildClauseIndexUseCase{
		source:  source,
		store:   store,
		holder:  holder,
		builder: builder,
		workers: workers,
		logger:  logger,
	}
}

// Rebuild scans all chunks and replaces the index wholesale. It returns
// the number of entries in the new index.
func (uc *RebuildClauseIndexUseCase) Rebuild(ctx context.Context) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	pool, err := ants.NewPool(uc.workers)
	if err != nil {
		return 0, fmt.Errorf("create scan pool: %w", err)
	}
	defer pool.Release()

	index := clause.NewIndex(uc.builder)
	entryCh := make(chan []domain.ClauseEntry, 2*uc.workers)

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for entries := range entryCh {
			for _, e := range entries {
				index.Insert(e)
			}
		}
	}()

	var wg sync.WaitGroup
	var scanErr error
	for _, vertical := range domain.Verticals() {
		err := uc.source.ScrollChunks(ctx, vertical, func(chunk domain.Chunk) error {
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				if entries := uc.builder.Scan(chunk); len(entries) > 0 {
					entryCh <- entries
				}
			})
			if submitErr != nil {
				wg.Done()
				return fmt.Errorf("submit scan task: %w", submitErr)
			}
			return nil
		})
		if err != nil {
			scanErr = fmt.Errorf("scroll %s chunks: %w", vertical, err)
			break
		}
	}

	wg.Wait()
	close(entryCh)
	<-collectorDone

	if scanErr != nil {
		return 0, domain.WrapError(domain.ErrBackendUnavailable, "clause index rebuild", scanErr)
	}

	entries := index.Entries()
	if uc.store != nil {
		if err := uc.store.SaveEntries(ctx, entries); err != nil {
			return 0, fmt.Errorf("persist clause index: %w", err)
		}
	}
	if uc.holder != nil {
		uc.holder.Swap(index)
	}

	uc.logger.Info("clause_index_rebuilt", "entries", len(entries))
	return len(entries), nil
}
