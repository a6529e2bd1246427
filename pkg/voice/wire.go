package voice

// SettingsSnapshot is the settings payload as served, after the response
// prefix is stripped. Fields without omitempty are required by validation.
type SettingsSnapshot struct {
	SettingsResponse SettingsResponse `json:"settings_response"`
}

type SettingsResponse struct {
	UserPreferences UserPreferences `json:"user_preferences"`
}

type UserPreferences struct {
	DefaultCallSettings *DefaultCallSettings `json:"default_call_settings,omitempty"`
	Forwarding          []ForwardRecord      `json:"forwarding,omitempty"`
}

// DefaultCallSettings carries the exclusion list. The service omits
// disabled_forwarding_id when no phone is disabled.
type DefaultCallSettings struct {
	DisabledForwardingID []int64 `json:"disabled_forwarding_id,omitempty"`
}

// ForwardRecord is one forwarding phone on the wire.
type ForwardRecord struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name,omitempty"`
	Type               int    `json:"type,omitempty"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	BehaviorOnRedirect int    `json:"behavior_on_redirect,omitempty"`
	PolicyBitmask      int    `json:"policy_bitmask,omitempty"`
	SMSEnabled         bool   `json:"sms_enabled,omitempty"`
}

// disabledIDs returns the exclusion list and whether it was sent at all.
func (s *SettingsSnapshot) disabledIDs() ([]int64, bool) {
	dcs := s.SettingsResponse.UserPreferences.DefaultCallSettings
	if dcs == nil || dcs.DisabledForwardingID == nil {
		return nil, false
	}
	return dcs.DisabledForwardingID, true
}
