package validatorset

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/abasis-ltd/gtfs.guru/feed"
)

// usageSet tracks which interned identifiers have been referenced
// elsewhere in the feed, backing the "unused_*" detectors (unused_shape,
// unused_trip, unused_station, unused_location_group) with a roaring
// bitmap over feed.Container's shared Interner instead of a per-check
// string set, per SPEC_FULL.md §3.
type usageSet struct {
	interner *feed.Interner
	bitmap   *roaring.Bitmap
}

func newUsageSet(interner *feed.Interner) *usageSet {
	return &usageSet{interner: interner, bitmap: roaring.New()}
}

func (u *usageSet) mark(id string) {
	if id == "" {
		return
	}
	u.bitmap.Add(uint32(u.interner.Intern(id)))
}

func (u *usageSet) has(id string) bool {
	handle, ok := u.interner.Lookup(id)
	if !ok {
		return false
	}
	return u.bitmap.Contains(uint32(handle))
}
