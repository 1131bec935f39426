package validatorset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/feed"
)

func TestUsageSetMarkAndHas(t *testing.T) {
	interner := feed.NewInterner()
	u := newUsageSet(interner)

	u.mark("trip_1")
	require.True(t, u.has("trip_1"))
	require.False(t, u.has("trip_2"))
}

func TestUsageSetIgnoresEmptyID(t *testing.T) {
	interner := feed.NewInterner()
	u := newUsageSet(interner)
	u.mark("")
	require.False(t, u.has(""))
}

func TestUsageSetHasUnseenIDIsFalse(t *testing.T) {
	interner := feed.NewInterner()
	u := newUsageSet(interner)
	require.False(t, u.has("never_interned"))
}
