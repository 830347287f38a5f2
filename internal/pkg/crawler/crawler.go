// Package crawler is the traversal engine: it owns the work queue and the
// visited store, admits candidates through the filter set and drives the
// fetch/extract/enqueue loop until the queue drains.
package crawler

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/warmstack/primer/internal/pkg/config"
	"github.com/warmstack/primer/internal/pkg/extractor"
	"github.com/warmstack/primer/internal/pkg/fetcher"
	"github.com/warmstack/primer/internal/pkg/filter"
	"github.com/warmstack/primer/internal/pkg/frontier"
	"github.com/warmstack/primer/internal/pkg/log"
	"github.com/warmstack/primer/internal/pkg/stats"
	"github.com/warmstack/primer/internal/pkg/visited"
	"github.com/warmstack/primer/pkg/models"
)

// Crawler processes one resource at a time, sequentially. It is the single
// owner of the queue and the store for the duration of a run.
type Crawler struct {
	cfg     *config.Config
	base    *url.URL
	store   visited.Store
	queue   frontier.Queue
	filters *filter.Set
	fetcher *fetcher.Fetcher
	logger  *log.FieldedLogger

	// enqueued tracks the (URL, media type) pairs queued this run, so a
	// pair reachable over several discovery paths is queued at most once
	enqueued map[string]struct{}
}

func New(cfg *config.Config, store visited.Store, queue frontier.Queue, filters *filter.Set, f *fetcher.Fetcher) (*Crawler, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Crawler{
		cfg:      cfg,
		base:     base,
		store:    store,
		queue:    queue,
		filters:  filters,
		fetcher:  f,
		enqueued: make(map[string]struct{}),
		logger: log.NewFieldedLogger(&log.Fields{
			"component": "crawler",
		}),
	}, nil
}

// Run seeds the queue with the start resource and processes candidates until
// the queue drains or ctx is canceled. Only persistence and queue failures
// abort the run, per-URL failures are recorded and contained.
func (c *Crawler) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	start := time.Now()
	defer func() { summary.Elapsed = time.Since(start) }()

	seed := models.NewResource(c.cfg.StartResource, c.cfg.MediaType)
	seed.Seed = true
	if err := c.enqueue(seed); err != nil {
		return summary, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		resource, err := c.queue.Dequeue()
		if errors.Is(err, frontier.ErrQueueEmpty) {
			break
		}
		if err != nil {
			return summary, err
		}

		if err := c.process(ctx, resource, summary); err != nil {
			return summary, err
		}
	}

	c.logger.Info("queue drained",
		"successes", summary.Success,
		"failures", summary.Failed,
		"rejected", summary.Rejected,
		"skipped", summary.Skipped)

	return summary, nil
}

func (c *Crawler) process(ctx context.Context, resource *models.Resource, summary *Summary) error {
	if c.store.Contains(resource.URL, resource.MediaType) {
		resource.State = models.StateSkipped
		stats.RecordState(resource.State)
		summary.Skipped++
		c.logger.Debug("already visited", "url", resource.URL)
		return nil
	}

	if !resource.Seed && !c.filters.Admits(resource.URL, nil) {
		resource.State = models.StateRejected
		stats.RecordState(resource.State)
		summary.Rejected++
		c.logger.Debug("rejected by filter", "url", resource.URL)

		// Recording rejected candidates keeps them from being re-evaluated
		// when reachable over another discovery path. Changing filters
		// between runs therefore requires a fresh visited-state file.
		return c.record(resource)
	}

	// Terminology package URLs only expand once their parent passed
	// admission, a rejected parent must not seed children.
	if child, ok := c.codelistChild(resource.URL); ok {
		if err := c.enqueueNew(child, resource.MediaType, resource.URL, summary); err != nil {
			return err
		}
	}

	resource.State = models.StateFetching
	c.logger.Info("requesting", "url", resource.URL, "media-type", resource.MediaType)

	result := c.fetcher.Fetch(ctx, resource.URL)
	stats.RecordFetch(result.Elapsed.Milliseconds())

	if result.Err != nil {
		// A canceled run is not a fetch outcome. The in-flight URL must
		// stay unrecorded so the next run picks it up again.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resource.State = models.StateFailed
		stats.RecordState(resource.State)
		summary.Failed++
		c.logger.Error("fetch failed",
			"url", resource.URL,
			"class", result.Class.String(),
			"status", result.StatusCode,
			"attempts", result.Attempts,
			"error", result.Err.Error())
		return c.record(resource)
	}

	resource.State = models.StateSuccess
	stats.RecordState(resource.State)
	summary.Success++
	c.logger.Info("received",
		"url", resource.URL,
		"status", result.StatusCode,
		"elapsed", result.Elapsed.Round(time.Millisecond).String())

	if err := c.record(resource); err != nil {
		return err
	}

	return c.discover(resource, result, summary)
}

// discover extracts the links of a fetched resource and enqueues the ones
// neither visited nor queued this run.
func (c *Crawler) discover(parent *models.Resource, result *fetcher.Result, summary *Summary) error {
	candidates := extractor.Extract(result.Body, result.Header, c.base, parent.MediaType)

	for _, candidate := range candidates {
		if err := c.enqueueNew(candidate, parent.MediaType, parent.URL, summary); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNew enqueues the (URL, media type) pair unless it was already
// queued this run or visited by a previous one.
func (c *Crawler) enqueueNew(URL, mediaType, via string, summary *Summary) error {
	child := models.NewResource(URL, mediaType)
	child.Via = via

	if _, queued := c.enqueued[child.Key()]; queued {
		return nil
	}
	if c.store.Contains(child.URL, child.MediaType) {
		return nil
	}

	if err := c.enqueue(child); err != nil {
		return err
	}
	summary.Discovered++
	return nil
}

// codelistChild returns the /codelists child the upstream terminology API
// stripped from its hypermedia, when expansion is enabled.
func (c *Crawler) codelistChild(URL string) (string, bool) {
	if !c.cfg.CTCodelists {
		return "", false
	}
	if !strings.Contains(URL, "/ct/") ||
		strings.Contains(URL, "codelist") ||
		URL == "/mdr/ct/packages" {
		return "", false
	}
	return URL + "/codelists", true
}

func (c *Crawler) enqueue(resource *models.Resource) error {
	if err := c.queue.Enqueue(resource); err != nil {
		return err
	}
	c.enqueued[resource.Key()] = struct{}{}
	return nil
}

func (c *Crawler) record(resource *models.Resource) error {
	if err := c.store.Record(resource.URL, resource.MediaType, resource.State); err != nil {
		// The run must not keep fetching what it cannot durably record
		return err
	}
	return nil
}
