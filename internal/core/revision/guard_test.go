package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		stored int64
		client *int64
		wantTS int64
		wantOK bool
	}{
		{"absent client uses now", 500, nil, 1000, true},
		{"older client is stale", 500, ptr(400), 0, false},
		{"equal client accepted", 500, ptr(500), 500, true},
		{"newer client accepted", 500, ptr(600), 600, true},
		{"client in the future kept verbatim", 500, ptr(5000), 5000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := Resolve(tt.stored, tt.client, 1000)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTS, ts)
		})
	}
}

func TestInitial(t *testing.T) {
	assert.Equal(t, int64(77), Initial(nil, 77))
	assert.Equal(t, int64(12), Initial(ptr(12), 77))
}
