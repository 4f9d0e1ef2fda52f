package icndb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Joke mirrors one joke as returned by the service.
type Joke struct {
	ID         int      `json:"id"`
	Joke       string   `json:"joke"`
	Categories []string `json:"categories"`
}

const typeSuccess = "success"

// envelope wraps every service response. On failure the value carries a
// message string instead of jokes.
type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (e envelope) jokes(path string) ([]Joke, error) {
	if e.Type != "" && e.Type != typeSuccess {
		var message string
		_ = json.Unmarshal(e.Value, &message)
		if message = strings.TrimSpace(message); message != "" {
			return nil, fmt.Errorf("api %s returned %s: %s", path, e.Type, message)
		}
		return nil, fmt.Errorf("api %s returned %s", path, e.Type)
	}

	trimmed := strings.TrimSpace(string(e.Value))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	// A single random joke comes back as an object.
	if strings.HasPrefix(trimmed, "{") {
		var one Joke
		if err := json.Unmarshal(e.Value, &one); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return []Joke{one}, nil
	}
	var list []Joke
	if err := json.Unmarshal(e.Value, &list); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return list, nil
}
