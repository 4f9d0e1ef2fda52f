package session

import (
	"context"

	"github.com/five82/norris/internal/favorites"
	"github.com/five82/norris/internal/icndb"
	"github.com/five82/norris/internal/jokes"
	"github.com/five82/norris/internal/state"
	"github.com/five82/norris/pkg/logger"
)

// Registry is the favorites surface a Session needs.
type Registry interface {
	jokes.FavoriteSet
	All() []jokes.Favorite
}

// Session holds the state of every view: the fetched collections, the last
// submitted filters and the favorites filter. Display lists are derived on
// demand from those and the registry, so they can never disagree with it.
//
// Only Run may be called from other goroutines.
type Session struct {
	fetcher  icndb.JokeFetcher
	registry Registry

	feeds    map[View]*state.Feed
	criteria map[View]jokes.Criteria
}

// New builds a Session. A nil fetcher makes every remote fetch fail and a nil
// registry keeps favorites in memory only.
func New(fetcher icndb.JokeFetcher, registry Registry) *Session {
	if registry == nil {
		registry = favorites.NewRegistry(context.Background(), nil)
	}
	s := &Session{
		fetcher:  fetcher,
		registry: registry,
		feeds:    make(map[View]*state.Feed),
		criteria: make(map[View]jokes.Criteria),
	}
	for _, v := range Views {
		if v.Remote() {
			s.feeds[v] = &state.Feed{}
		}
	}
	return s
}

// Display returns the display list of view.
func (s *Session) Display(view View) []jokes.Joke {
	if view == ViewFavorites {
		c := s.criteria[ViewFavorites]
		return jokes.FromFavorites(jokes.FilterFavorites(s.registry.All(), c.Nerdy, c.Explicit))
	}
	feed, ok := s.feeds[view]
	if !ok {
		return nil
	}
	return jokes.Reconcile(feed.Snapshot().Raw, s.registry)
}

// Loading reports whether view waits for a fetch.
func (s *Session) Loading(view View) bool {
	feed, ok := s.feeds[view]
	return ok && feed.Snapshot().Loading
}

// Snapshot returns the fetch state of a remote view. The favorites view has
// no fetch state and yields a zero Snapshot.
func (s *Session) Snapshot(view View) state.Snapshot {
	if feed, ok := s.feeds[view]; ok {
		return feed.Snapshot()
	}
	return state.Snapshot{}
}

// Criteria returns the filter last submitted for view.
func (s *Session) Criteria(view View) jokes.Criteria {
	return s.criteria[view]
}

// Submit records criteria for view. For a remote view it starts a fetch and
// returns the request to run; ok is false for the favorites view, which is
// filtered locally.
func (s *Session) Submit(view View, c jokes.Criteria) (Request, bool) {
	s.criteria[view] = c

	feed, remote := s.feeds[view]
	if !remote {
		logger.Debug("filter favorites", logger.Bool("nerdy", c.Nerdy), logger.Bool("explicit", c.Explicit))
		return Request{}, false
	}

	req := Request{
		View:   view,
		Seq:    feed.Begin(),
		Params: jokes.Build(c).Values(),
	}
	if view == ViewRandom {
		req.Random = true
		req.Count = jokes.ParseQuantity(c.Quantity)
	}
	logger.Debug("submit filter",
		logger.String("view", view.String()),
		logger.Uint64("seq", req.Seq),
		logger.String("query", req.Params.Encode()),
	)
	return req, true
}

// Refresh repeats the last submitted filter of view.
func (s *Session) Refresh(view View) (Request, bool) {
	return s.Submit(view, s.criteria[view])
}

// Run executes req. It is safe to call from a command goroutine.
func (s *Session) Run(ctx context.Context, req Request) Result {
	return Fetch(ctx, s.fetcher, req)
}

// Apply stores a fetch result and reports whether it was current. Results of
// superseded requests are dropped.
func (s *Session) Apply(res Result) bool {
	feed, ok := s.feeds[res.View]
	if !ok {
		return false
	}
	if !feed.Complete(res.Seq, res.Jokes, res.Err) {
		logger.Debug("discard stale result",
			logger.String("view", res.View.String()),
			logger.Uint64("seq", res.Seq),
			logger.Uint64("latest", feed.Latest()),
		)
		return false
	}
	return true
}

// ToggleFavorite flips the favorite state of the row at index in view and
// returns the new display list. text is the content the caller saw at index;
// if the row has moved since, the first row with that content is toggled.
//
// jokes.ErrJokeNotFound and jokes.ErrBlankJoke leave everything unchanged.
// Any other error is a persistence warning and the toggle has taken effect.
func (s *Session) ToggleFavorite(view View, index int, text string) ([]jokes.Joke, error) {
	list := s.Display(view)
	idx := jokes.Locate(list, index, text)
	if idx < 0 {
		return list, jokes.ErrJokeNotFound
	}
	// The registry is the source of truth; the favorites view has to be
	// re-derived from it since the un-favorited joke leaves that list.
	_, err := jokes.Toggle(list, idx, s.registry)
	return s.Display(view), err
}

// Favorites returns every stored favorite, ignoring the favorites filter.
func (s *Session) Favorites() []jokes.Favorite {
	return s.registry.All()
}
