package alerts

import (
	"context"
	"sync"

	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type LoadMoreMode string

const (
	// LoadMoreReplace shows only the newly fetched page.
	LoadMoreReplace LoadMoreMode = "replace"
	// LoadMoreAppend adds the newly fetched page to the alerts already shown.
	LoadMoreAppend LoadMoreMode = "append"
)

const DefaultPageLimit int = 20

type Config struct {
	Limit    int          `yaml:"limit"`
	LoadMore LoadMoreMode `yaml:"loadMore"`
}

// View keeps the alerts shown to one operator together with the filtered and
// overall summaries for the active priority filter.
type View struct {
	source  AlertSource
	overlay OverlayStore
	limit   int
	mode    LoadMoreMode

	mu         sync.Mutex
	generation uint64
	filter     types.Priority
	page       int
	loaded     bool
	alerts     []Alert
	filtered   types.Summary
	overall    types.Summary
	pagination types.Pagination
}

type State struct {
	Filter       types.Priority
	Alerts       []Alert
	Filtered     types.Summary
	Overall      types.Summary
	Total        int
	StatusCounts types.StatusCounts
	Pagination   types.Pagination
	Loaded       bool
}

func NewView(source AlertSource, overlay OverlayStore, cfg Config) *View {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	mode := cfg.LoadMore
	if mode != LoadMoreAppend {
		mode = LoadMoreReplace
	}

	return &View{
		source:  source,
		overlay: overlay,
		limit:   limit,
		mode:    mode,
		page:    1,
	}
}

// Refresh reloads the first page with the current filter.
func (v *View) Refresh(ctx context.Context) error {
	return v.load(ctx, 1, false)
}

// ToggleFilter selects priority p, or clears the filter if p is already selected.
func (v *View) ToggleFilter(ctx context.Context, p types.Priority) error {
	v.mu.Lock()
	if v.filter == p {
		v.filter = ""
	} else {
		v.filter = p
	}
	v.mu.Unlock()

	return v.load(ctx, 1, false)
}

// SetFilter selects priority p. The empty priority clears the filter.
func (v *View) SetFilter(ctx context.Context, p types.Priority) error {
	v.mu.Lock()
	v.filter = p
	v.mu.Unlock()

	return v.load(ctx, 1, false)
}

func (v *View) ClearFilter(ctx context.Context) error {
	return v.SetFilter(ctx, "")
}

// LoadMore fetches the next page. It is only allowed while the last fetched
// page reported that more pages exist.
func (v *View) LoadMore(ctx context.Context) error {
	v.mu.Lock()
	if !v.pagination.HasMore {
		v.mu.Unlock()
		return ErrNoMorePages
	}
	next := v.page + 1
	v.mu.Unlock()

	return v.load(ctx, next, v.mode == LoadMoreAppend)
}

func (v *View) load(ctx context.Context, page int, accumulate bool) error {
	log := logging.GetFromContext(ctx)

	v.mu.Lock()
	v.generation++
	generation := v.generation
	filter := v.filter
	limit := v.limit
	v.mu.Unlock()

	q := types.Query{Page: page, Limit: limit, Priority: filter}

	var filtered, overall types.QueryResult
	var err error

	if filter != "" {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var qerr error
			overall, qerr = v.source.Query(gctx, types.Query{Page: 1, Limit: 1})
			return qerr
		})
		g.Go(func() error {
			var qerr error
			filtered, qerr = v.source.Query(gctx, q)
			return qerr
		})
		err = g.Wait()
	} else {
		filtered, err = v.source.Query(ctx, q)
		overall = filtered
	}

	if err != nil {
		v.mu.Lock()
		if generation == v.generation {
			v.alerts = nil
		}
		v.mu.Unlock()
		return err
	}

	merged := Merge(filtered.Alerts, v.overlaySnapshot(ctx))
	fetched := lo.Map(merged, func(a types.Alert, _ int) Alert { return Wrap(a) })

	v.mu.Lock()
	defer v.mu.Unlock()

	if generation != v.generation {
		log.Debug().Msgf("discarding stale response for page %d", page)
		return nil
	}

	if accumulate {
		v.alerts = appendUnique(v.alerts, fetched)
	} else {
		v.alerts = fetched
	}

	v.page = page
	v.loaded = true
	v.filtered = filtered.Summary
	v.overall = overall.Summary
	v.pagination = filtered.Pagination
	if v.pagination.Page == 0 {
		v.pagination.Page = page
	}

	return nil
}

func (v *View) overlaySnapshot(ctx context.Context) map[string]types.OverlayEntry {
	if v.overlay == nil {
		return map[string]types.OverlayEntry{}
	}

	snapshot, err := v.overlay.LoadAll(ctx)
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Error().Err(err).Msg("could not load overlay, using remote status only")
		return map[string]types.OverlayEntry{}
	}

	return snapshot
}

func appendUnique(current, fetched []Alert) []Alert {
	index := make(map[string]int, len(current))
	result := make([]Alert, 0, len(current)+len(fetched))

	for _, a := range current {
		index[a.ID()] = len(result)
		result = append(result, a)
	}

	for _, a := range fetched {
		if i, ok := index[a.ID()]; ok {
			result[i] = a
			continue
		}
		index[a.ID()] = len(result)
		result = append(result, a)
	}

	return result
}

// Get returns the displayed alert with the given canonical id.
func (v *View) Get(alertID string) (Alert, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, a := range v.alerts {
		if a.ID() == alertID {
			return a, true
		}
	}

	return nil, false
}

// replace swaps in the mutated alert. Loads that started before the mutation
// are invalidated so they cannot commit the previous status over it.
func (v *View) replace(updated Alert) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++

	for i, a := range v.alerts {
		if a.ID() == updated.ID() {
			v.alerts[i] = updated
			return true
		}
	}

	return false
}

func (v *View) Filter() types.Priority {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// State returns a consistent snapshot of the view. The total is always the sum
// of the overall priority counts.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	alerts := make([]Alert, len(v.alerts))
	copy(alerts, v.alerts)

	var counts types.StatusCounts
	if v.overall.Status != nil {
		counts = *v.overall.Status
	} else {
		counts = types.CountStatuses(lo.Map(alerts, func(a Alert, _ int) types.Alert { return a.Snapshot() }))
	}

	return State{
		Filter:       v.filter,
		Alerts:       alerts,
		Filtered:     v.filtered,
		Overall:      v.overall,
		Total:        v.overall.ByPriority.Total(),
		StatusCounts: counts,
		Pagination:   v.pagination,
		Loaded:       v.loaded,
	}
}
