package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndRecent(t *testing.T) {
	book := New[string](4)
	book.Record("a", "first")
	book.Record("a", "second")
	book.Record("b", "other")

	assert.Equal(t, []string{"first", "second"}, book.Recent("a"))
	assert.Equal(t, []string{"other"}, book.Recent("b"))
	assert.Empty(t, book.Recent("missing"))
}

func TestRingEvictsOldest(t *testing.T) {
	book := New[int](3)
	for i := 1; i <= 5; i++ {
		book.Record("a", i)
	}

	assert.Equal(t, []int{3, 4, 5}, book.Recent("a"))
}

func TestForget(t *testing.T) {
	book := New[string](4)
	book.Record("a", "entry")
	book.Forget("a")

	assert.Empty(t, book.Recent("a"))
}

func TestDefaultSize(t *testing.T) {
	book := New[string](0)
	for i := 0; i < DefaultSize+5; i++ {
		book.Record("a", fmt.Sprintf("entry-%d", i))
	}

	recent := book.Recent("a")
	assert.Len(t, recent, DefaultSize)
	assert.Equal(t, "entry-5", recent[0])
}
