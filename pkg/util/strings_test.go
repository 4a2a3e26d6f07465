package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "🚀🚀", Truncate("🚀🚀🚀", 2))
}

func TestHashKeyStable(t *testing.T) {
	assert.Equal(t, HashKey("moon soon"), HashKey("moon soon"))
	assert.NotEqual(t, HashKey("moon soon"), HashKey("rug soon"))
}
