package gateway

import (
	"encoding/hex"
	"net/url"
	"strings"
)

// Field is a single name/value pair of a bank payload
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered field list. Order matters: some banks sign values in
// the order they appear on the wire.
type Fields []Field

// Get returns the first value for name
func (f Fields) Get(name string) string {
	v, _ := f.Lookup(name)
	return v
}

// Lookup returns the first value for name and whether it was present
func (f Fields) Lookup(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

func (f Fields) Has(name string) bool {
	_, ok := f.Lookup(name)
	return ok
}

// Set replaces the value of name in place, or appends it
func (f *Fields) Set(name, value string) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Map returns a name to value map
func (f Fields) Map() map[string]string {
	m := make(map[string]string, len(f))
	for _, field := range f {
		m[field.Name] = field.Value
	}
	return m
}

// Names returns field names in order
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Encode renders the fields as a query string, keeping their order
func (f Fields) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}

// ParseQuery decodes a URL-encoded query string or form body, split on '&'.
// Blank values are kept and the first occurrence of a key wins. Malformed
// escapes never fail the parse: see Unescape.
func ParseQuery(raw string) Fields {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	var fields Fields
	seen := make(map[string]bool)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name = Unescape(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, Field{Name: name, Value: Unescape(value)})
	}
	return fields
}

// Unescape decodes a query component. Invalid %XX sequences are kept as
// written so that a tampered payload reaches signature checks intact.
func Unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s):
			if decoded, err := hex.DecodeString(s[i+1 : i+3]); err == nil {
				b.Write(decoded)
				i += 2
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
