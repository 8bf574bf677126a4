package script

import (
	"context"
	"sync"
	"time"

	"energyvis/html"
	"energyvis/logger"
	"energyvis/source"
	_type "energyvis/type"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store holds the datasets of one load cycle keyed by name. It is read only
// once the cycle has loaded.
type Store struct {
	data map[string]*_type.Dataset
}

func (s *Store) Get(name string) (*_type.Dataset, bool) {
	if s == nil {
		return nil, false
	}
	ds, ok := s.data[name]
	return ds, ok
}

func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.data))
	for n := range s.data {
		names = append(names, n)
	}
	return names
}

// Result is the outcome of one load cycle: a page per chart, in chart order.
type Result struct {
	CycleID  string
	Pages    []html.ChartPage
	Store    *Store
	Err      error
	Duration time.Duration
}

// Failed reports whether the batch failed to load.
func (r *Result) Failed() bool {
	return r.Err != nil && _type.HasCode(r.Err, _type.ErrCodeLoadFailure)
}

// DataLoader fetches every source concurrently and renders every chart once
// all of them have loaded. One failed source fails the whole batch.
type DataLoader struct {
	cfg      *_type.Config
	sources  []source.Source
	charts   []Chart
	logger   *logger.Logger
	snapshot *Snapshotter
	snapOnly map[string]bool
}

type LoaderOption func(*DataLoader)

// WithSnapshot saves the named datasets after every successful load.
func WithSnapshot(s *Snapshotter, names ...string) LoaderOption {
	return func(l *DataLoader) {
		l.snapshot = s
		for _, n := range names {
			l.snapOnly[n] = true
		}
	}
}

func NewDataLoader(cfg *_type.Config, sources []source.Source, charts []Chart, log *logger.Logger, opts ...LoaderOption) *DataLoader {
	l := &DataLoader{
		cfg:      cfg,
		sources:  sources,
		charts:   charts,
		logger:   log.Named("loader"),
		snapOnly: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run performs one load cycle. The returned Result always carries a page per
// chart; on a load failure every page is the uniform error notice.
func (l *DataLoader) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{CycleID: uuid.NewString()}
	log := l.logger.With(zap.String("cycle", res.CycleID))

	loadCtx := ctx
	if l.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, l.cfg.LoadTimeout)
		defer cancel()
	}

	store, err := l.load(loadCtx)
	if err != nil {
		log.Error("error loading data", zap.Error(err))
		res.Err = err
		res.Pages = l.failurePages()
		res.Duration = time.Since(start)
		return res, err
	}
	res.Store = store
	log.Info("all data loaded", zap.Strings("datasets", store.Names()))

	l.saveSnapshots(store, log)

	res.Pages, err = l.render(ctx, store)
	res.Duration = time.Since(start)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		res.Err = err
		return res, err
	}
	log.Info("charts created", zap.Int("charts", len(res.Pages)), zap.Duration("took", res.Duration))
	return res, nil
}

type fetchResult struct {
	name string
	ds   *_type.Dataset
	err  error
}

// load fans out one fetch per source and fans the results back in. The
// first failure, timeout or cancellation of ctx returns at once; fetches
// still running are not cancelled, they finish into the buffered channel
// and are discarded.
func (l *DataLoader) load(ctx context.Context) (*Store, error) {
	fetchCtx := context.WithoutCancel(ctx)
	results := make(chan fetchResult, len(l.sources))
	for _, src := range l.sources {
		go func(src source.Source) {
			ds, err := src.Fetch(fetchCtx)
			results <- fetchResult{name: src.Name(), ds: ds, err: err}
		}(src)
	}

	store := &Store{data: make(map[string]*_type.Dataset, len(l.sources))}
	for range l.sources {
		select {
		case <-ctx.Done():
			return nil, _type.WrapError(_type.ErrCodeLoadFailure, "load cancelled", ctx.Err())
		case r := <-results:
			if r.err != nil {
				return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, r.err, "load %s", r.name)
			}
			if r.ds == nil {
				return nil, _type.NewErrorf(_type.ErrCodeLoadFailure, "load %s: no data", r.name)
			}
			l.logger.Debug("dataset loaded", zap.String("dataset", r.name), zap.Int("rows", r.ds.Len()))
			store.data[r.name] = r.ds
		}
	}
	return store, nil
}

// render runs every chart independently; they share only the read-only store.
func (l *DataLoader) render(ctx context.Context, store *Store) ([]html.ChartPage, error) {
	pages := make([]html.ChartPage, len(l.charts))
	g, _ := errgroup.WithContext(ctx)
	for i, c := range l.charts {
		g.Go(func() error {
			ds, ok := store.Get(c.Dataset())
			pages[i] = c.Render(ds, l.cfg.Viewport)
			if !ok {
				return _type.NewErrorf(_type.ErrCodeRenderFailure, "chart %s: dataset %s was not loaded", c.Target(), c.Dataset())
			}
			return nil
		})
	}
	return pages, g.Wait()
}

func (l *DataLoader) failurePages() []html.ChartPage {
	pages := make([]html.ChartPage, len(l.charts))
	for i, c := range l.charts {
		pages[i] = html.ChartPage{
			Target:      c.Target(),
			Width:       l.cfg.Viewport.Width,
			Height:      l.cfg.Viewport.Height,
			Placeholder: &html.Placeholder{Kind: html.PlaceholderError, Message: html.LoadFailedMessage},
		}
	}
	return pages
}

func (l *DataLoader) saveSnapshots(store *Store, log *logger.Logger) {
	if l.snapshot == nil || len(l.snapOnly) == 0 {
		return
	}
	var wg sync.WaitGroup
	for name := range l.snapOnly {
		ds, ok := store.Get(name)
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			path, err := l.snapshot.Save(ds)
			if err != nil {
				log.Warn("snapshot failed", zap.String("dataset", name), zap.Error(err))
				return
			}
			log.Info("snapshot saved", zap.String("dataset", name), zap.String("path", path))
		}()
	}
	wg.Wait()
}
