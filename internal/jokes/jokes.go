package jokes

import (
	"errors"
	"slices"
)

// Category names understood by the joke service.
const (
	CategoryNerdy    = "nerdy"
	CategoryExplicit = "explicit"
)

var (
	// ErrJokeNotFound is returned when the selected row is not in the list.
	ErrJokeNotFound = errors.New("joke not in list")
	// ErrBlankJoke is returned when a joke without content is favorited.
	ErrBlankJoke = errors.New("joke has no text")
)

// Joke is one entry of a display list. ID is assigned by the remote service
// and is not stable across fetches; Text is what identifies a joke.
type Joke struct {
	ID         int
	Text       string
	Categories []string
	Favorite   bool
}

// Favorite is the persisted form of a favorited joke.
type Favorite struct {
	ID         int      `json:"id"`
	Text       string   `json:"joke"`
	Categories []string `json:"categories"`
}

// Entry converts the joke to its persisted form.
func (j Joke) Entry() Favorite {
	return Favorite{ID: j.ID, Text: j.Text, Categories: slices.Clone(j.Categories)}
}

// Joke converts a stored favorite back into a display entry.
func (f Favorite) Joke() Joke {
	return Joke{ID: f.ID, Text: f.Text, Categories: slices.Clone(f.Categories), Favorite: true}
}

// HasCategory reports whether the favorite is tagged with category.
func (f Favorite) HasCategory(category string) bool {
	return slices.Contains(f.Categories, category)
}

// FavoriteChecker answers membership questions by content.
type FavoriteChecker interface {
	IsFavorite(text string) bool
}

// FavoriteSet is the registry surface the toggle engine mutates.
type FavoriteSet interface {
	FavoriteChecker
	Add(entry Favorite) error
	RemoveContent(text string) error
}
