package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/five82/norris/internal/jokes"
	"github.com/five82/norris/pkg/logger"
)

// FileStore keeps the snapshot in a JSON document on disk. The document is an
// object with StorageKey mapped to the favorites array.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the file at path. The file is created
// on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) []jokes.Favorite {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("read favorites file", logger.String("path", s.path), logger.Err(err))
		}
		return []jokes.Favorite{}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("favorites file is not valid json", logger.String("path", s.path), logger.Err(err))
		return []jokes.Favorite{}
	}
	raw, ok := doc[StorageKey]
	if !ok {
		return []jokes.Favorite{}
	}
	favorites, err := decode(raw)
	if err != nil {
		logger.Warn("stored favorites are malformed", logger.String("path", s.path), logger.Err(err))
		return []jokes.Favorite{}
	}
	if favorites == nil {
		favorites = []jokes.Favorite{}
	}
	return favorites
}

func (s *FileStore) Save(_ context.Context, favorites []jokes.Favorite) error {
	value, err := encode(favorites)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string]json.RawMessage{StorageKey: value}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode favorites document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".favorites-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace favorites file: %w", err)
	}
	return nil
}
