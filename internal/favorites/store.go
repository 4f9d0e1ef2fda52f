package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/norris/internal/jokes"
)

// StorageKey names the single durable slot that holds the favorites snapshot.
const StorageKey = "norris:favoriteJokes"

// ErrPersist marks a failed save. The in-memory registry is still updated.
var ErrPersist = errors.New("persist favorites")

// Store persists the complete favorites snapshot.
type Store interface {
	// Load returns the stored favorites. Missing or unreadable data yields an
	// empty slice rather than an error.
	Load(ctx context.Context) []jokes.Favorite
	// Save replaces the stored snapshot.
	Save(ctx context.Context, favorites []jokes.Favorite) error
}

func encode(favorites []jokes.Favorite) ([]byte, error) {
	if favorites == nil {
		favorites = []jokes.Favorite{}
	}
	data, err := json.Marshal(favorites)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]jokes.Favorite, error) {
	var favorites []jokes.Favorite
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return favorites, nil
}
