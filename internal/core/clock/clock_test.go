package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewFixed(start)
	assert.Equal(t, int64(1000), Unix(c))

	c.Advance(5 * time.Second)
	assert.Equal(t, int64(1005), Unix(c))

	c.Set(time.Unix(42, 0))
	assert.Equal(t, int64(42), Unix(c))
}
