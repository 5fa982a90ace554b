package redis

import "fmt"

// Cache key patterns. Redis holds derived data only: the authoritative
// tally and visit records live in the document store.
const (
	KeyResults   = "engage:results"       // cached results payload
	KeyVisitSeen = "engage:visit:seen:%s" // 24h visit dedup marker per origin
)

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeyResults() string {
	return kb.BuildKey(KeyResults)
}

func (kb *KeyBuilder) KeyVisitSeen(origin string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVisitSeen, origin))
}
