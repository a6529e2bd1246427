package voice

import "fmt"

// Phone is a forwarding phone. Enabled is derived from the exclusion list
// when settings are built, and is updated in place after a successful
// SetPhoneState without re-fetching.
type Phone struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	PhoneNumber        string `json:"phone_number"`
	Type               int    `json:"type"`
	PolicyBitmask      int    `json:"policy_bitmask"`
	SMSEnabled         bool   `json:"sms_enabled"`
	BehaviorOnRedirect int    `json:"behavior_on_redirect"`
	Enabled            bool   `json:"enabled"`
}

func (p *Phone) String() string {
	state := "disabled"
	if p.Enabled {
		state = "enabled"
	}
	return fmt.Sprintf("%s <%s> [%d] %s", p.Name, p.PhoneNumber, p.ID, state)
}

// Settings is the ordered set of phones from one fetch.
type Settings struct {
	phones []*Phone
	byID   map[int64]*Phone
}

// Phones returns the phones in the order the service listed them.
func (s *Settings) Phones() []*Phone {
	out := make([]*Phone, len(s.phones))
	copy(out, s.phones)
	return out
}

// Phone looks a phone up by id.
func (s *Settings) Phone(id int64) (*Phone, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Enabled returns the phones that currently receive forwarded calls.
func (s *Settings) Enabled() []*Phone {
	return s.filter(true)
}

// Disabled returns the phones on the exclusion list.
func (s *Settings) Disabled() []*Phone {
	return s.filter(false)
}

func (s *Settings) Len() int {
	return len(s.phones)
}

func (s *Settings) filter(enabled bool) []*Phone {
	var out []*Phone
	for _, p := range s.phones {
		if p.Enabled == enabled {
			out = append(out, p)
		}
	}
	return out
}
