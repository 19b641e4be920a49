package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	ID        int64    `db:"id"`
	Name      string   `db:"name"`
	Position  int64    `db:"position"`
	Timestamp int64    `db:"timestamp"`
	Children  []string `db:"-"`
	internal  int
}

func TestColumns_QuotedInOrder(t *testing.T) {
	assert.Equal(t,
		[]string{`"id"`, `"name"`, `"position"`, `"timestamp"`},
		Columns[sample]())
}

func TestValues_Exclude(t *testing.T) {
	s := sample{ID: 3, Name: "Pasta", Position: 2, Timestamp: 99, Children: []string{"x"}, internal: 1}

	all := Values(s)
	assert.Len(t, all, 4)
	assert.Equal(t, int64(3), all[`"id"`])
	assert.Equal(t, int64(99), all[`"timestamp"`])

	withoutID := Values(&s, "id", "position")
	assert.Equal(t, map[string]any{`"name"`: "Pasta", `"timestamp"`: int64(99)}, withoutID)

	assert.Nil(t, Values(42))
}

func TestIdent(t *testing.T) {
	assert.Equal(t, `"lots"`, Ident("lots"))
	assert.Equal(t, `"we""ird"`, Ident(`we"ird`))
}
