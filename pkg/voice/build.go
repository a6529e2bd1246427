package voice

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// BuildSettings turns a snapshot into phones. A phone is enabled unless its
// id is on the exclusion list; with no list every phone is enabled. Records
// keep their source order. A nil snapshot gives empty settings.
func BuildSettings(snap *SettingsSnapshot) *Settings {
	s := &Settings{byID: make(map[int64]*Phone)}
	if snap == nil {
		return s
	}

	disabled := newIDSet(snap.disabledIDs())
	for _, rec := range snap.SettingsResponse.UserPreferences.Forwarding {
		p := &Phone{
			ID:                 rec.ID,
			Name:               rec.Name,
			PhoneNumber:        rec.PhoneNumber,
			Type:               rec.Type,
			PolicyBitmask:      rec.PolicyBitmask,
			SMSEnabled:         rec.SMSEnabled,
			BehaviorOnRedirect: rec.BehaviorOnRedirect,
			Enabled:            !disabled.contains(rec.ID),
		}
		s.phones = append(s.phones, p)
		s.byID[p.ID] = p
	}
	return s
}

// idSet holds the exclusion list. Ids that do not fit a uint32 go to a map
// so membership stays exact.
type idSet struct {
	bm    *roaring.Bitmap
	wider map[int64]struct{}
}

func newIDSet(ids []int64, present bool) *idSet {
	set := &idSet{bm: roaring.New()}
	if !present {
		return set
	}
	for _, id := range ids {
		if fitsUint32(id) {
			set.bm.Add(uint32(id))
			continue
		}
		if set.wider == nil {
			set.wider = make(map[int64]struct{})
		}
		set.wider[id] = struct{}{}
	}
	return set
}

func (s *idSet) contains(id int64) bool {
	if fitsUint32(id) {
		return s.bm.Contains(uint32(id))
	}
	_, ok := s.wider[id]
	return ok
}

func fitsUint32(id int64) bool {
	return id >= 0 && uint64(id) <= math.MaxUint32
}
