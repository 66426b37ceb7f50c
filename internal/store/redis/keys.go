package redis

import "strings"

const (
	// KeyPrefix namespaces every key written by marketboard.
	KeyPrefix = "marketboard:"
	// DefaultListingsKey holds the JSON array of listings.
	DefaultListingsKey = KeyPrefix + "listings"
)

// ListingsKey returns the key to use for the listing slot. Bare names are
// placed under KeyPrefix.
func ListingsKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultListingsKey
	}
	if strings.HasPrefix(name, KeyPrefix) {
		return name
	}
	return KeyPrefix + name
}
