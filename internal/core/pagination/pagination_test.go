package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		count       int64
		number      int
		size        int
		wantNumber  int
		wantPages   int
		wantOffset  int
		wantItems   int64
		hasPrevious bool
		hasNext     bool
	}{
		{"first of two", 13, 1, 10, 1, 2, 0, 10, false, true},
		{"second of two", 13, 2, 10, 2, 2, 10, 3, true, false},
		{"past the end clamps", 13, 7, 10, 2, 2, 10, 3, true, false},
		{"zero clamps to first", 13, 0, 10, 1, 2, 0, 10, false, true},
		{"negative clamps to first", 13, -4, 10, 1, 2, 0, 10, false, true},
		{"exact multiple", 20, 2, 10, 2, 2, 10, 10, true, false},
		{"empty listing", 0, 3, 10, 1, 1, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.count, tt.number, tt.size)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantPages, p.NumPages)
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.Equal(t, tt.wantItems, p.EndIndex()-int64(p.Offset()))
			assert.Equal(t, tt.hasPrevious, p.HasPrevious())
			assert.Equal(t, tt.hasNext, p.HasNext())
		})
	}
}

func TestNeighbours(t *testing.T) {
	p := New(35, 2, 10)
	assert.Equal(t, 1, p.PreviousNumber())
	assert.Equal(t, 3, p.NextNumber())
	assert.Equal(t, []int{1, 2, 3, 4}, p.Numbers())
	assert.True(t, p.HasOtherPages())

	single := New(4, 1, 10)
	assert.False(t, single.HasOtherPages())
	assert.Equal(t, 1, single.PreviousNumber())
	assert.Equal(t, 1, single.NextNumber())
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1, ParseNumber(""))
	assert.Equal(t, 1, ParseNumber("abc"))
	assert.Equal(t, 1, ParseNumber("-2"))
	assert.Equal(t, 3, ParseNumber("3"))
}
