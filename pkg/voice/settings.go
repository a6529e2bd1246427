package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/usestring/gvoice-mcp/internal/schema"
)

// APIVersion is the protocol version sent with every settings call.
const APIVersion = 13

// ResponsePrefix is prepended by the service to every JSON response.
const ResponsePrefix = ")]}',"

var settingsValidator = schema.MustForType(&SettingsSnapshot{})

// StripResponsePrefix removes the anti-hijacking prefix and surrounding
// whitespace. The prefix is removed by length, as the service always sends it.
func StripResponsePrefix(body []byte) ([]byte, error) {
	if len(body) < len(ResponsePrefix) {
		return nil, fmt.Errorf("%w: body is %d bytes, shorter than the response prefix",
			ErrMalformedResponse, len(body))
	}
	return []byte(strings.TrimSpace(string(body[len(ResponsePrefix):]))), nil
}

// FetchSettingsJSON returns the validated settings payload with the prefix
// stripped.
func (c *Client) FetchSettingsJSON(ctx context.Context) (json.RawMessage, error) {
	token, ok := c.sessionToken()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	q := "m=set&v=" + strconv.Itoa(APIVersion)
	resp, err := c.do(ctx, http.MethodPost, c.settingsURL(q), "text/plain; charset=UTF-8", sessionBody(token))
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}

	data, err := StripResponsePrefix(resp.body)
	if err != nil {
		return nil, err
	}

	if err := settingsValidator.Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return json.RawMessage(data), nil
}

// FetchSnapshot fetches and decodes the settings payload.
func (c *Client) FetchSnapshot(ctx context.Context) (*SettingsSnapshot, error) {
	data, err := c.FetchSettingsJSON(ctx)
	if err != nil {
		return nil, err
	}
	var snap SettingsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &snap, nil
}

// FetchSettings fetches the account's phones.
func (c *Client) FetchSettings(ctx context.Context) (*Settings, error) {
	snap, err := c.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	settings := BuildSettings(snap)
	slog.Debug("fetched settings",
		slog.Int("phones", settings.Len()),
		slog.Int("disabled", len(settings.Disabled())),
	)
	return settings, nil
}

// SetPhoneState enables or disables forwarding to phone. The service has no
// partial update, so every field of phone is sent as it currently stands;
// a stale phone overwrites newer server values. On success phone.Enabled is
// set to enable; on failure phone is left untouched.
func (c *Client) SetPhoneState(ctx context.Context, phone *Phone, enable bool) error {
	if phone == nil {
		return ErrNilPhone
	}
	token, ok := c.sessionToken()
	if !ok {
		return ErrNotAuthenticated
	}

	_, err := c.do(ctx, http.MethodPost, c.settingsURL(mutationQuery(phone, enable)),
		"text/plain; charset=UTF-8", sessionBody(token))
	if err != nil {
		return fmt.Errorf("setting phone %d: %w", phone.ID, err)
	}

	phone.Enabled = enable
	slog.Info("phone state changed",
		slog.Int64("phone_id", phone.ID),
		slog.Bool("enabled", enable),
	)
	return nil
}

// EnablePhone is SetPhoneState(ctx, phone, true).
func (c *Client) EnablePhone(ctx context.Context, phone *Phone) error {
	return c.SetPhoneState(ctx, phone, true)
}

// DisablePhone is SetPhoneState(ctx, phone, false).
func (c *Client) DisablePhone(ctx context.Context, phone *Phone) error {
	return c.SetPhoneState(ctx, phone, false)
}

func (c *Client) settingsURL(rawQuery string) string {
	return c.voiceBaseURL + "/x?" + rawQuery
}

func sessionBody(token string) *strings.Reader {
	return strings.NewReader(`{gvx: "` + token + `"}`)
}

// mutationQuery lists the parameters in the order the service documents them.
func mutationQuery(p *Phone, enable bool) string {
	params := [][2]string{
		{"m", "set"},
		{"fp_id0", strconv.FormatInt(p.ID, 10)},
		{"fp_name0", p.Name},
		{"fp_num0", p.PhoneNumber},
		{"fp_type0", strconv.Itoa(p.Type)},
		{"fp_pol0", strconv.Itoa(p.PolicyBitmask)},
		{"fp_sen0", strconv.FormatBool(p.SMSEnabled)},
		{"fp_red0", strconv.Itoa(p.BehaviorOnRedirect)},
		{"fp_en0", strconv.FormatBool(enable)},
		{"v", strconv.Itoa(APIVersion)},
	}
	var sb strings.Builder
	for i, kv := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(kv[0])
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv[1]))
	}
	return sb.String()
}
