// Package icndb provides an HTTP client for ICNDb compatible joke services.
//
// # Overview
//
// The client is transport only. It encodes query parameters it is handed,
// issues GET requests and decodes the response envelope. Filtering rules,
// favorites and retries live elsewhere; a failed request is reported once and
// the caller decides what to do.
//
// # API Endpoints
//
//   - GET /jokes: the full collection matching the query
//   - GET /jokes/random/{n}: n random jokes matching the query
//
// Both accept firstName, lastName, limitTo and escape parameters and answer
// with an envelope:
//
//	{"type": "success", "value": [{"id": 1, "joke": "...", "categories": ["nerdy"]}]}
//
// Any other type is turned into an error that includes the service message.
//
// # Client Usage
//
//	client, err := icndb.NewClient("https://api.icndb.com", icndb.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//	jokes, err := client.RandomJokes(ctx, 5, url.Values{"escape": {"javascript"}})
//
// # Error Handling
//
// Errors are wrapped with the failing step: "create request", "execute
// request", "decode response", or "api <path> returned status <code>" for
// HTTP failures.
package icndb
