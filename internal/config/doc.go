// Package config loads the norris configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/norris/config.toml (default)
//  3. If the config file doesn't exist, start from defaults
//  4. Apply NORRIS_* environment variables on top
//
// Blank values at any level fall through to the next one.
//
// # TOML Format
//
//	api_url = "https://api.icndb.com"
//	request_timeout = "10s"
//
//	[store]
//	backend = "file"          # or "sqlite"
//	path = "~/.local/share/norris/favorites.json"
//
//	[log]
//	path = "~/.local/state/norris/norris.log"
//	level = "info"
//
// Every field is optional. Tilde expansion is applied to paths. When the
// sqlite backend is selected without a path, favorites.db is used instead of
// favorites.json.
//
// # Environment
//
// NORRIS_API_URL, NORRIS_REQUEST_TIMEOUT, NORRIS_STORE_BACKEND,
// NORRIS_STORE_PATH, NORRIS_LOG_PATH and NORRIS_LOG_LEVEL override the file.
// EnvUsage renders the list for --help output.
//
// # Error Handling
//
// Load fails on unreadable files, invalid TOML and unparseable durations.
// Missing files are not an error. Validate checks the merged values and is
// called once at startup; it is the only place a bad setting stops norris.
package config
