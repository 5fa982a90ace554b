package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantPrefix  string
	}{
		{"production", "production", "prod"},
		{"development", "development", "staging"},
		{"staging", "staging", "staging"},
		{"test", "test", "staging"},
		{"unknown defaults to prod", "something-else", "prod"},
		{"empty defaults to prod", "", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilder_Keys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:engage:results", kb.KeyResults())
	assert.Equal(t, "prod:engage:visit:seen:1.2.3.4", kb.KeyVisitSeen("1.2.3.4"))
}

func TestKeyBuilder_BuildKey(t *testing.T) {
	kb := NewKeyBuilder("staging")
	assert.Equal(t, "staging:custom:key", kb.BuildKey("custom:key"))
}
