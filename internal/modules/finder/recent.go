package finder

import (
	"context"
	"net/url"
	"strconv"

	"motopartes/internal/cache"

	"github.com/cockroachdb/errors"
)

const (
	MaxRecentSearches = 3
	RecentSearchesKey = "recentMotorcycleSearches"
)

// RecentSearches is a visitor's most recent complete searches, newest first.
type RecentSearches []Search

// Add puts s in front, drops any earlier identical search and keeps at
// most MaxRecentSearches entries.
func (r RecentSearches) Add(s Search) RecentSearches {
	out := make(RecentSearches, 0, MaxRecentSearches)
	out = append(out, s)
	for _, prev := range r {
		if prev == s {
			continue
		}
		out = append(out, prev)
	}
	if len(out) > MaxRecentSearches {
		out = out[:MaxRecentSearches]
	}
	return out
}

// RedirectURL is the results page for a search.
func (s Search) RedirectURL() string {
	q := url.Values{}
	q.Set("year", strconv.Itoa(s.Year))
	q.Set("brand", s.Brand)
	q.Set("model", s.Model)
	return "/resultados?" + q.Encode()
}

// RecentStore persists recent searches per visitor.
type RecentStore interface {
	Load(ctx context.Context, visitor string) (RecentSearches, error)
	Save(ctx context.Context, visitor string, searches RecentSearches) error
}

// CacheRecentStore keeps recent searches as a JSON array under
// "recentMotorcycleSearches:<visitor>" in a cache.Store. With Redis behind
// it the list survives restarts; with cache.Memory it is per process.
type CacheRecentStore struct {
	store cache.Store
}

func NewCacheRecentStore(store cache.Store) *CacheRecentStore {
	return &CacheRecentStore{store: store}
}

func recentKey(visitor string) string {
	return RecentSearchesKey + ":" + visitor
}

func (s *CacheRecentStore) Load(ctx context.Context, visitor string) (RecentSearches, error) {
	var list RecentSearches
	ok, err := s.store.Get(ctx, recentKey(visitor), &list)
	if err != nil {
		return nil, errors.Wrap(err, "load recent searches")
	}
	if !ok {
		return RecentSearches{}, nil
	}
	if len(list) > MaxRecentSearches {
		list = list[:MaxRecentSearches]
	}
	return list, nil
}

func (s *CacheRecentStore) Save(ctx context.Context, visitor string, searches RecentSearches) error {
	if len(searches) > MaxRecentSearches {
		searches = searches[:MaxRecentSearches]
	}
	return errors.Wrap(s.store.Set(ctx, recentKey(visitor), searches, 0), "save recent searches")
}
