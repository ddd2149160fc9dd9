package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_UniqueAndSortable(t *testing.T) {
	t.Parallel()

	prev := New()
	for range 100 {
		next := New()
		require.NotEqual(t, prev, next)
		require.Less(t, prev.String(), next.String(), "monotonic ULIDs sort lexically")
		prev = next
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := New()
	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("not-a-ulid")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	require.True(t, Zero.IsZero())
	require.True(t, Zero.Time().IsZero())
}
