// Package pipeline orchestrates event discovery: fetch, extract,
// normalize, deduplicate, annotate and persist, one source at a time.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/silverhaven/eventscout/internal/cache"
	"github.com/silverhaven/eventscout/internal/dedupe"
	"github.com/silverhaven/eventscout/internal/extract"
	"github.com/silverhaven/eventscout/internal/fetch"
	"github.com/silverhaven/eventscout/internal/metrics"
	"github.com/silverhaven/eventscout/internal/model"
	"github.com/silverhaven/eventscout/internal/normalize"
	"github.com/silverhaven/eventscout/internal/schema"
	"github.com/silverhaven/eventscout/internal/source"
	"github.com/silverhaven/eventscout/internal/store"
	"github.com/silverhaven/eventscout/internal/util"
	"github.com/silverhaven/eventscout/internal/worker"
)

// ContentFetcher retrieves a plain-text rendering of one source page
type ContentFetcher interface {
	Fetch(ctx context.Context, src source.Descriptor) (*model.RawContent, error)
}

// Pipeline runs the catalog sequentially with per-source failure
// isolation: one bad source records an error and the loop moves on.
type Pipeline struct {
	catalog    source.Catalog
	fetcher    ContentFetcher
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	store      store.EventStore
	pacer      worker.Pacer
	recent     *dedupe.Recent
	now        func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithPacer overrides the inter-source pacing policy
func WithPacer(p worker.Pacer) Option {
	return func(pl *Pipeline) { pl.pacer = p }
}

// WithRecent enables skipping rewrites of unchanged records
func WithRecent(r *dedupe.Recent) Option {
	return func(pl *Pipeline) { pl.recent = r }
}

// WithClock overrides the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(pl *Pipeline) { pl.now = now }
}

// New assembles a pipeline from explicit collaborators
func New(catalog source.Catalog, fetcher ContentFetcher, extractor *extract.Extractor,
	normalizer *normalize.Normalizer, st store.EventStore, opts ...Option) *Pipeline {

	pl := &Pipeline{
		catalog:    catalog,
		fetcher:    fetcher,
		extractor:  extractor,
		normalizer: normalizer,
		store:      st,
		pacer:      worker.NopPacer{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// FromConfig wires the production pipeline: reader-service fetcher with
// cache and robots gate, configured extraction horizon and source cap,
// rate-limited pacing.
func FromConfig(cfg *model.Config, catalog source.Catalog, st store.EventStore) *Pipeline {
	var fetchOpts []fetch.Option
	if c := cache.New(cfg.Cache); c != nil {
		fetchOpts = append(fetchOpts, fetch.WithCache(c))
	}
	if cfg.Fetch.RespectRobots {
		fetchOpts = append(fetchOpts, fetch.WithRobots(
			util.NewRobotsChecker(cfg.Fetch.UserAgent, cfg.Fetch.Timeout)))
	}

	opts := []Option{}
	if cfg.Pipeline.SourceDelay > 0 {
		opts = append(opts, WithPacer(worker.NewRatePacer(cfg.Pipeline.SourceDelay)))
	}
	if cfg.Pipeline.WriteCacheTTL > 0 {
		opts = append(opts, WithRecent(dedupe.NewRecent(0, cfg.Pipeline.WriteCacheTTL)))
	}

	return New(
		catalog,
		fetch.NewFetcher(cfg.Fetch, fetchOpts...),
		extract.New(cfg.Pipeline.HorizonDays),
		normalize.New(cfg.Pipeline.MaxEventsPerSource, catalog.Neighborhoods()),
		st,
		opts...,
	)
}

// Run processes every catalog source and returns the aggregated summary.
// Only the caller's authorization gate can abort a run before it starts;
// once running, per-source failures never stop the loop.
func (p *Pipeline) Run(ctx context.Context) *model.RunSummary {
	started := p.now()
	summary := &model.RunSummary{StartedAt: started.UTC()}

	for i, src := range p.catalog {
		if i > 0 {
			if err := p.pacer.Wait(ctx); err != nil {
				// Shutdown mid-run: remaining sources stay unattempted
				log.Printf("pipeline: pacing interrupted: %v", err)
				break
			}
		}
		summary.Add(p.runSource(ctx, src))
	}

	summary.Duration = p.now().Sub(started)
	metrics.RunDuration.Observe(summary.Duration.Seconds())
	log.Printf("pipeline: %d sources, %d events found, %d upserted, %d errors in %s",
		summary.SourcesAttempted, summary.EventsFound, summary.EventsUpserted,
		summary.SourcesWithError, summary.Duration.Round(time.Millisecond))

	return summary
}

func (p *Pipeline) runSource(ctx context.Context, src source.Descriptor) model.SourceResult {
	res := model.SourceResult{SourceName: src.Name}

	content, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		res.Error = err.Error()
		metrics.SourcesProcessed.WithLabelValues(src.Name, "fetch_error").Inc()
		log.Printf("pipeline: %s: %v", src.Name, err)
		return res
	}

	fragments := p.extractor.Extract(content)
	records := dedupe.Collapse(p.normalizer.Normalize(src, fragments))
	res.Found = len(records)
	metrics.EventsFound.WithLabelValues(src.Name).Add(float64(len(records)))

	var batch []model.EventRecord
	var digests []string
	for i := range records {
		records[i].Schema = schema.Annotate(&records[i])
		digest := dedupe.Digest(&records[i])
		if p.recent.Seen(digest) {
			continue
		}
		batch = append(batch, records[i])
		digests = append(digests, digest)
	}

	if len(batch) > 0 {
		written, err := p.store.Upsert(ctx, batch)
		if err != nil {
			res.Error = err.Error()
			metrics.SourcesProcessed.WithLabelValues(src.Name, "persist_error").Inc()
			log.Printf("pipeline: %s: upsert: %v", src.Name, err)
			return res
		}
		res.Upserted = written
		metrics.EventsUpserted.Add(float64(written))
		for _, d := range digests {
			p.recent.Mark(d)
		}
	}

	metrics.SourcesProcessed.WithLabelValues(src.Name, "ok").Inc()
	return res
}
