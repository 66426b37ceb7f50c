// Package commands defines the marketboard CLI.
//
// Commands
//
//   - serve    Run the HTTP API
//   - list     Show listings, optionally filtered and sorted
//   - add      Create a listing
//   - rm       Delete a listing after confirmation
//   - export   Write all listings to a JSON file
//   - import   Prepend listings from a JSON file
//   - options  Show the category, location and sort choices
//
// The root command loads the configuration from MARKET_* environment
// variables, applies flag overrides and opens the board before any
// subcommand runs.
package commands
