package loginform

import (
	"log/slog"
	"net/url"
	"strings"
)

// FieldNames names the form inputs that receive the caller's credentials.
// Matching is case-insensitive.
type FieldNames struct {
	Username string
	Password string
}

// DefaultFieldNames are the credential inputs of the Google accounts form.
var DefaultFieldNames = FieldNames{Username: "Email", Password: "Passwd"}

// Credentials are held only for the duration of a login call.
type Credentials struct {
	Username string
	Password string
}

// LogValue keeps the password out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "[REDACTED]"),
	)
}

// Payload is an ordered form submission.
type Payload []Field

// Payload builds the submission for f. A credential input is filled in only
// when the server left its value empty; every other input, hidden tokens
// included, is sent back exactly as served.
func (f *Form) Payload(creds Credentials, names FieldNames) Payload {
	p := make(Payload, 0, len(f.Fields))
	for _, field := range f.Fields {
		value := field.Value
		if value == "" {
			switch {
			case names.Username != "" && strings.EqualFold(field.Name, names.Username):
				value = creds.Username
			case names.Password != "" && strings.EqualFold(field.Name, names.Password):
				value = creds.Password
			}
		}
		p = append(p, Field{Name: field.Name, Value: value, Type: field.Type})
	}
	return p
}

// Encode renders p as application/x-www-form-urlencoded in field order.
// url.Values is not used because it sorts keys.
func (p Payload) Encode() string {
	var sb strings.Builder
	for i, field := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(field.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(field.Value))
	}
	return sb.String()
}

// Get returns the first value submitted under name.
func (p Payload) Get(name string) (string, bool) {
	for _, field := range p {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Names returns the field names in submission order.
func (p Payload) Names() []string {
	names := make([]string, len(p))
	for i, field := range p {
		names[i] = field.Name
	}
	return names
}
