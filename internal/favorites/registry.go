package favorites

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/five82/norris/internal/jokes"
	"github.com/five82/norris/pkg/logger"
)

const saveTimeout = 5 * time.Second

// Registry is the in-memory favorites set, indexed by content. Every mutation
// writes the full snapshot to the backing store.
//
// A Registry is not safe for concurrent use; the UI update loop owns it.
type Registry struct {
	store   Store
	entries []jokes.Favorite
	index   map[string]int
	lastErr error
}

var _ jokes.FavoriteSet = (*Registry)(nil)

// NewRegistry loads the stored snapshot. A nil store keeps favorites in
// memory only. Entries with empty text or repeated content are dropped, the
// first occurrence wins.
func NewRegistry(ctx context.Context, store Store) *Registry {
	r := &Registry{store: store, index: map[string]int{}}
	if store == nil {
		return r
	}

	loaded := store.Load(ctx)
	for _, f := range loaded {
		key := jokes.ContentKey(f.Text)
		if key == "" {
			continue
		}
		if _, dup := r.index[key]; dup {
			continue
		}
		r.index[key] = len(r.entries)
		r.entries = append(r.entries, f)
	}
	if dropped := len(loaded) - len(r.entries); dropped > 0 {
		logger.Warn("dropped invalid stored favorites", logger.Int("dropped", dropped))
	}
	return r
}

// IsFavorite reports whether a joke with the same content is stored.
func (r *Registry) IsFavorite(text string) bool {
	_, ok := r.index[jokes.ContentKey(text)]
	return ok
}

// Add stores entry unless its content is already present. An entry without
// content is rejected with jokes.ErrBlankJoke.
func (r *Registry) Add(entry jokes.Favorite) error {
	key := jokes.ContentKey(entry.Text)
	if key == "" {
		return jokes.ErrBlankJoke
	}
	if _, ok := r.index[key]; ok {
		return nil
	}
	entry.Categories = slices.Clone(entry.Categories)
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, entry)
	return r.persist("add")
}

// Remove drops every entry with id. Ids are not stable across fetches, so
// callers acting on a displayed joke use RemoveContent.
func (r *Registry) Remove(id int) error {
	return r.removeWhere("remove", func(f jokes.Favorite) bool { return f.ID == id })
}

// RemoveContent drops the entry whose content matches text.
func (r *Registry) RemoveContent(text string) error {
	key := jokes.ContentKey(text)
	return r.removeWhere("remove content", func(f jokes.Favorite) bool {
		return jokes.ContentKey(f.Text) == key
	})
}

func (r *Registry) removeWhere(op string, match func(jokes.Favorite) bool) error {
	kept := slices.DeleteFunc(slices.Clone(r.entries), match)
	if len(kept) == len(r.entries) {
		return nil
	}
	r.entries = kept
	r.reindex()
	return r.persist(op)
}

// All returns the favorites in insertion order.
func (r *Registry) All() []jokes.Favorite {
	out := make([]jokes.Favorite, len(r.entries))
	for i, f := range r.entries {
		f.Categories = slices.Clone(f.Categories)
		out[i] = f
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// LastSaveError returns the error of the most recent save, nil after a
// successful one.
func (r *Registry) LastSaveError() error {
	return r.lastErr
}

func (r *Registry) reindex() {
	clear(r.index)
	for i, f := range r.entries {
		r.index[jokes.ContentKey(f.Text)] = i
	}
}

func (r *Registry) persist(op string) error {
	if r.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := r.store.Save(ctx, r.All()); err != nil {
		r.lastErr = fmt.Errorf("%w: %s: %w", ErrPersist, op, err)
		logger.Warn("save favorites", logger.String("op", op), logger.Int("count", len(r.entries)), logger.Err(err))
		return r.lastErr
	}
	r.lastErr = nil
	logger.Debug("saved favorites", logger.String("op", op), logger.Int("count", len(r.entries)))
	return nil
}
