package jokes

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultQuantity is used when a quantity is missing, invalid or not above one.
	DefaultQuantity = 5
	// MaxQuantity caps random draws.
	MaxQuantity = 100

	escapeJavaScript = "javascript"
)

// Criteria is what the user entered in a filter panel.
type Criteria struct {
	FirstName string
	LastName  string
	Nerdy     bool
	Explicit  bool
	Quantity  string
}

// QueryParams are the request parameters understood by the joke service.
// Empty fields are left out of the query.
type QueryParams struct {
	FirstName string
	LastName  string
	LimitTo   string
	Escape    string
}

// Values encodes the params for a request URL.
func (q QueryParams) Values() url.Values {
	values := url.Values{}
	if q.FirstName != "" {
		values.Set("firstName", q.FirstName)
	}
	if q.LastName != "" {
		values.Set("lastName", q.LastName)
	}
	if q.LimitTo != "" {
		values.Set("limitTo", q.LimitTo)
	}
	if q.Escape != "" {
		values.Set("escape", q.Escape)
	}
	return values
}

// DefaultParams returns the params of an unfiltered request.
func DefaultParams() QueryParams {
	return QueryParams{Escape: escapeJavaScript}
}

// Build turns filter criteria into query params. Blank names are omitted and
// the category restriction uses the service's bracketed list encoding, where
// an unset category leaves its slot empty: [nerdy,explicit], [nerdy,] or
// [,explicit].
func Build(c Criteria) QueryParams {
	params := DefaultParams()
	params.FirstName = strings.TrimSpace(c.FirstName)
	params.LastName = strings.TrimSpace(c.LastName)
	if c.Nerdy || c.Explicit {
		params.LimitTo = "[" + slot(c.Nerdy, CategoryNerdy) + "," + slot(c.Explicit, CategoryExplicit) + "]"
	}
	return params
}

func slot(set bool, name string) string {
	if set {
		return name
	}
	return ""
}

// ParseQuantity reads a random-draw size. Anything that is not an integer
// above one falls back to DefaultQuantity.
func ParseQuantity(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 1 {
		return DefaultQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
