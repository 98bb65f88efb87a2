package domain

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDShape(t *testing.T) {
	id := NewID()
	assert.Len(t, id, IDLength)
	assert.True(t, ValidID(id), "generated id must be well-formed: %s", id)
}

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIDTimestampEncoding(t *testing.T) {
	var zero [10]byte

	// The epoch encodes as all-zero timestamp characters.
	id := newIDAt(time.UnixMilli(0), zero)
	assert.Equal(t, "0000000000", id[:10])
	assert.Equal(t, "0000000000000000", id[10:])

	// One millisecond encodes in the last timestamp character.
	id = newIDAt(time.UnixMilli(1), zero)
	assert.Equal(t, "0000000001", id[:10])

	// 32 ms rolls into the next character position.
	id = newIDAt(time.UnixMilli(32), zero)
	assert.Equal(t, "0000000010", id[:10])
}

func TestIDEntropyEncoding(t *testing.T) {
	entropy := [10]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	id := newIDAt(time.UnixMilli(0), entropy)
	assert.Equal(t, "ZZZZZZZZZZZZZZZZ", id[10:])
}

func TestIDsSortInGenerationOrder(t *testing.T) {
	var entropy [10]byte
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = newIDAt(base.Add(time.Duration(i)*time.Millisecond), entropy)
	}

	assert.True(t, sort.StringsAreSorted(ids),
		"ids minted a millisecond apart must sort lexicographically")
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))

	assert.False(t, ValidID(""))
	assert.False(t, ValidID("short"))
	assert.False(t, ValidID("01ARZ3NDEKTSV4RRFFQ69G5FA"))   // 25 chars
	assert.False(t, ValidID("01ARZ3NDEKTSV4RRFFQ69G5FAVX")) // 27 chars
	assert.False(t, ValidID("01arz3ndektsv4rrffq69g5fav"))  // lowercase
	assert.False(t, ValidID("01ARZ3NDEKTSV4RRFFQ69G5FAI"))  // excluded I
	assert.False(t, ValidID("01ARZ3NDEKTSV4RRFFQ69G5FAO"))  // excluded O
	assert.False(t, ValidID("01ARZ3NDEKTSV4RRFFQ69G5FA!"))
}

func TestNowIsUTCMilliseconds(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}
