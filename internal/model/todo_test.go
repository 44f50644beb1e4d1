package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection_Index(t *testing.T) {
	t.Parallel()

	c := Collection{{ID: 3, Text: "c"}, {ID: 2, Text: "b"}, {ID: 1, Text: "a"}}
	assert.Equal(t, 0, c.Index(3))
	assert.Equal(t, 2, c.Index(1))
	assert.Equal(t, -1, c.Index(42))
	assert.Equal(t, -1, Collection(nil).Index(1))
}

func TestCollection_Clone(t *testing.T) {
	t.Parallel()

	c := Collection{{ID: 1, Text: "a"}}
	cl := c.Clone()
	cl[0].Text = "changed"
	assert.Equal(t, "a", c[0].Text)

	empty := Collection(nil).Clone()
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCollection_Equal(t *testing.T) {
	t.Parallel()

	a := Collection{{ID: 1, Text: "a"}, {ID: 2, Text: "b", Completed: true}}
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(Collection{{ID: 2, Text: "b", Completed: true}, {ID: 1, Text: "a"}}))
	assert.False(t, a.Equal(a[:1]))
	assert.True(t, Collection(nil).Equal(Collection{}))
}
