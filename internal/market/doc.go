// Package market is the listing board itself.
//
// Service owns the listing sequence and exposes the browse projection and the
// commands that change it (create, delete, import) plus export. Every command
// writes the full sequence through the store before the in-memory copy is
// updated, so a failed write leaves the board unchanged.
//
// Commands are serialized by a mutex; the CLI and HTTP surfaces share the
// same Service.
package market
