// Package viewcache memoizes built dashboard views per selection.
//
// The dataset never changes after startup, so a view is valid for as long as
// the dataset fingerprint that is part of its key. Lookups go LRU, then the
// optional shared store, then a fresh build; concurrent misses on the same
// key share one build.
package viewcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mohammed-shakir/pt-dashboard/internal/cache"
	"github.com/mohammed-shakir/pt-dashboard/internal/cache/keys"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/observability"
	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
)

// Lookup outcomes, also used as metric labels.
const (
	OutcomeLRUHit    = "lru_hit"
	OutcomeSharedHit = "shared_hit"
	OutcomeMiss      = "miss"
)

type Options struct {
	Size      int
	Shared    cache.Store
	TTL       time.Duration
	OpTimeout time.Duration
	Logger    *slog.Logger
}

type Cache struct {
	b      *dashboard.Builder
	lru    *lru.Cache[string, *dashboard.View]
	sf     singleflight.Group
	shared cache.Store
	ttl    time.Duration
	opTO   time.Duration
	log    *slog.Logger
}

func New(b *dashboard.Builder, opts Options) (*Cache, error) {
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 250 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	l, err := lru.New[string, *dashboard.View](opts.Size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		b:      b,
		lru:    l,
		shared: opts.Shared,
		ttl:    opts.TTL,
		opTO:   opts.OpTimeout,
		log:    opts.Logger,
	}, nil
}

// View returns the view for c. Returned views are shared between callers
// and must not be modified. Shared-store failures only cost a rebuild.
func (vc *Cache) View(ctx context.Context, c filter.Criteria) (*dashboard.View, string) {
	key := keys.Key(vc.b.Dataset().Fingerprint(), c)
	if v, ok := vc.lru.Get(key); ok {
		observability.IncViewCache(OutcomeLRUHit)
		return v, OutcomeLRUHit
	}

	type result struct {
		v       *dashboard.View
		outcome string
	}
	r, _, _ := vc.sf.Do(key, func() (any, error) {
		// a flight that finished just before this one may have filled the LRU
		if v, ok := vc.lru.Get(key); ok {
			return result{v, OutcomeLRUHit}, nil
		}
		if v, ok := vc.fromShared(ctx, key); ok {
			vc.lru.Add(key, v)
			return result{v, OutcomeSharedHit}, nil
		}
		v := vc.b.Build(c)
		observability.ObserveView(v.Matched, v.Map.Fallbacks)
		vc.lru.Add(key, v)
		vc.toShared(ctx, key, v)
		return result{v, OutcomeMiss}, nil
	})
	res := r.(result)
	observability.IncViewCache(res.outcome)
	return res.v, res.outcome
}

// Len reports the number of views held in process.
func (vc *Cache) Len() int { return vc.lru.Len() }

// Purge drops every in-process view.
func (vc *Cache) Purge() { vc.lru.Purge() }

func (vc *Cache) fromShared(ctx context.Context, key string) (*dashboard.View, bool) {
	if vc.shared == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, vc.opTO)
	defer cancel()

	raw, ok, err := vc.shared.Get(ctx, key)
	if err != nil {
		vc.log.Warn("shared view cache get failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var v dashboard.View
	if err := json.Unmarshal(raw, &v); err != nil {
		vc.log.Warn("shared view cache entry unreadable", "key", key, "err", err)
		return nil, false
	}
	return &v, true
}

func (vc *Cache) toShared(ctx context.Context, key string, v *dashboard.View) {
	if vc.shared == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		vc.log.Warn("marshal view for shared cache", "key", key, "err", err)
		return
	}
	// detached from the request so a client disconnect does not drop the fill
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), vc.opTO)
	defer cancel()
	if err := vc.shared.Set(ctx, key, raw, vc.ttl); err != nil {
		vc.log.Warn("shared view cache set failed", "key", key, "err", err)
	}
}
