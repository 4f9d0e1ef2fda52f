// Package app is the composition root of norris.
//
// Run loads the configuration, opens the log file and the favorites store,
// builds the favorites registry, the joke service client and the view
// session, and then starts the terminal UI. Every dependency is created here
// and passed down; no package holds global state apart from the logger.
//
// Only configuration errors and a favorites database that cannot be opened
// are fatal. A log file that cannot be opened disables logging, and failed
// favorite saves are reported once the UI exits.
package app
