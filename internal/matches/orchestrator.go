package matches

import (
	"context"
	"time"

	"arena-stats/internal/core/riot"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/shared/metrics"
	"arena-stats/internal/store"

	"golang.org/x/sync/errgroup"
)

// Store is the slice of the match cache store the orchestrator needs.
type Store interface {
	FindByPlayer(ctx context.Context, puuid string) ([]store.MatchRecord, error)
	UpsertMany(ctx context.Context, records []store.MatchRecord) error
}

// Orchestrator assembles a player's complete match set: everything already
// cached, plus whatever upstream has that the cache does not, fetched
// page by page under the shared rate budget and persisted as it arrives.
type Orchestrator struct {
	client riot.ClientInterface
	store  Store
}

// NewOrchestrator wires the upstream client and cache store together.
func NewOrchestrator(client riot.ClientInterface, st Store) *Orchestrator {
	return &Orchestrator{client: client, store: st}
}

// FetchAll returns the full match set for a player: cached matches first,
// newly fetched matches appended. The combined order carries no chronological
// guarantee.
//
// Pagination walks id pages of fixed size until a short page; ids already
// cached are skipped; new details for one page are fetched concurrently and
// persisted as a batch before the next page is requested. On an
// unrecoverable error the fetch aborts, keeping batches persisted so far.
func (o *Orchestrator) FetchAll(ctx context.Context, puuid, playerName string) ([]riot.MatchData, error) {
	m := metrics.GetMatchRefresh()
	start := time.Now()

	existing, err := o.store.FindByPlayer(ctx, puuid)
	if err != nil {
		m.Errors.WithLabelValues("store_read").Inc()
		return nil, err
	}

	known := make(map[string]struct{}, len(existing))
	all := make([]riot.MatchData, 0, len(existing))
	for _, rec := range existing {
		known[rec.MatchID] = struct{}{}
		all = append(all, rec.Data)
	}
	m.MatchesCached.Add(float64(len(existing)))

	newCount := 0
	pages := 0
	for offset := 0; ; offset += riot.MatchPageSize {
		page, err := o.client.ListMatchIDPage(ctx, puuid, offset)
		if err != nil {
			m.Errors.WithLabelValues("id_page").Inc()
			return nil, err
		}
		pages++
		m.Pages.Inc()

		newIDs := make([]string, 0, len(page))
		for _, id := range page {
			if _, ok := known[id]; !ok {
				newIDs = append(newIDs, id)
			}
		}

		if len(newIDs) > 0 {
			fetched, err := o.fetchDetails(ctx, newIDs)
			if err != nil {
				m.Errors.WithLabelValues("detail_fetch").Inc()
				return nil, err
			}

			records := make([]store.MatchRecord, len(newIDs))
			for i, id := range newIDs {
				records[i] = store.MatchRecord{
					PUUID:      puuid,
					PlayerName: playerName,
					MatchID:    id,
					Data:       fetched[i],
				}
				known[id] = struct{}{}
			}
			if err := o.store.UpsertMany(ctx, records); err != nil {
				m.Errors.WithLabelValues("store_write").Inc()
				return nil, err
			}

			all = append(all, fetched...)
			newCount += len(newIDs)
			m.MatchesNew.Add(float64(len(newIDs)))
		}

		if len(page) < riot.MatchPageSize {
			break
		}
	}

	m.Refreshes.Observe(time.Since(start).Seconds())
	logs.Info("match refresh completed",
		"puuid", puuid,
		"cached", len(existing),
		"fetched", newCount,
		"pages", pages,
		"duration_ms", time.Since(start).Milliseconds())

	return all, nil
}

// fetchDetails fetches match documents concurrently, preserving id order.
// Each call is independently admitted by the scheduler.
func (o *Orchestrator) fetchDetails(ctx context.Context, ids []string) ([]riot.MatchData, error) {
	results := make([]riot.MatchData, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			data, err := o.client.FetchMatchDetail(gctx, id)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
