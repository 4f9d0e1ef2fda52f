package jokes

import (
	"errors"
	"slices"

	"github.com/five82/norris/internal/icndb"
)

// Reconcile annotates a fetched collection with favorite flags. Membership is
// decided by content, never by the remote id.
func Reconcile(raw []icndb.Joke, favorites FavoriteChecker) []Joke {
	list := make([]Joke, 0, len(raw))
	for _, r := range raw {
		list = append(list, Joke{
			ID:         r.ID,
			Text:       r.Joke,
			Categories: slices.Clone(r.Categories),
			Favorite:   favorites != nil && favorites.IsFavorite(r.Joke),
		})
	}
	return list
}

// Locate finds the row a selection refers to. The row at index is used when it
// still holds text; otherwise the first row with the same content is. Ids are
// never consulted since they repeat and drift between fetches. It returns -1
// when no row matches.
func Locate(list []Joke, index int, text string) int {
	key := ContentKey(text)
	if index >= 0 && index < len(list) && ContentKey(list[index].Text) == key {
		return index
	}
	if key == "" {
		return -1
	}
	return slices.IndexFunc(list, func(j Joke) bool { return ContentKey(j.Text) == key })
}

// Toggle flips the favorite flag of the joke at index and applies the same
// change to the favorite set. The returned list is a new slice; the input is
// not modified. Every entry sharing the joke's content gets the new flag.
//
// The set is only ever changed by content: a stored entry may carry an id
// that now belongs to another joke.
//
// ErrJokeNotFound and ErrBlankJoke leave the list unchanged. Any other error
// reports a persistence failure: the returned list and the in-memory set
// already reflect the toggle.
func Toggle(list []Joke, index int, set FavoriteSet) ([]Joke, error) {
	if index < 0 || index >= len(list) {
		return list, ErrJokeNotFound
	}

	target := list[index]
	key := ContentKey(target.Text)
	if key == "" {
		return list, ErrBlankJoke
	}
	favorite := !target.Favorite

	var err error
	if favorite {
		err = set.Add(target.Entry())
	} else {
		err = set.RemoveContent(target.Text)
	}
	if errors.Is(err, ErrBlankJoke) {
		return list, err
	}

	next := make([]Joke, len(list))
	for i, j := range list {
		if i == index || ContentKey(j.Text) == key {
			j.Favorite = favorite
		}
		next[i] = j
	}
	return next, err
}

// FilterFavorites selects favorites by category. With no category selected
// every favorite is returned. Otherwise the result is the union of the nerdy
// matches followed by the explicit matches, without repeating a joke.
func FilterFavorites(all []Favorite, nerdy, explicit bool) []Favorite {
	if !nerdy && !explicit {
		return slices.Clone(all)
	}

	var categories []string
	if nerdy {
		categories = append(categories, CategoryNerdy)
	}
	if explicit {
		categories = append(categories, CategoryExplicit)
	}

	seen := make(map[string]struct{}, len(all))
	out := make([]Favorite, 0, len(all))
	for _, category := range categories {
		for _, f := range all {
			if !f.HasCategory(category) {
				continue
			}
			key := ContentKey(f.Text)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// FromFavorites builds a display list from stored favorites.
func FromFavorites(favorites []Favorite) []Joke {
	list := make([]Joke, 0, len(favorites))
	for _, f := range favorites {
		list = append(list, f.Joke())
	}
	return list
}
