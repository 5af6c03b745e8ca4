// Package schema describes the named fields a bank accepts and checks
// candidate values against them before anything is signed.
package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwork/eopayment/internal/pkg/gateway"
)

// TypeClass is the character class a value must belong to
type TypeClass string

const (
	Numeric        TypeClass = "n"
	Alpha          TypeClass = "a"
	Alnum          TypeClass = "an"
	AlnumDash      TypeClass = "an-"
	AlnumSemicolon TypeClass = "an;"
	AlnumAt        TypeClass = "an@"
	Text           TypeClass = "ans"
	Any            TypeClass = ""
)

// Default computes a field value when neither the caller nor the backend
// configuration provides one
type Default func() string

// Static returns a Default always yielding v
func Static(v string) Default {
	return func() string { return v }
}

// Now14 yields the current time as YYYYMMDDhhmmss
func Now14(clock func() time.Time) Default {
	return func() string { return clock().Format("20060102150405") }
}

// Tomorrow yields the next day's date in the given layout
func Tomorrow(clock func() time.Time, layout string) Default {
	return func() string { return clock().AddDate(0, 0, 1).Format(layout) }
}

// Parameter describes one bank field
type Parameter struct {
	Name string
	Type TypeClass
	// Code is the bank's numeric identifier for the field, 0 when unknown
	Code      int
	Length    int
	MaxLength int
	Required  bool
	Sign      bool
	Default   Default
	Choices   []string
}

// Check validates value against the parameter. Checks run in a fixed order:
// exact length, max length, choices, then type class. Empty strings skip the
// type class check.
func (p Parameter) Check(value string) error {
	if p.Length > 0 && len(value) != p.Length {
		return p.invalid(value, fmt.Sprintf("length must be %d", p.Length))
	}
	if p.MaxLength > 0 && len(value) > p.MaxLength {
		return p.invalid(value, fmt.Sprintf("length must be at most %d", p.MaxLength))
	}
	if len(p.Choices) > 0 && !contains(p.Choices, value) {
		return p.invalid(value, fmt.Sprintf("must be one of %s", strings.Join(quoted(p.Choices), ", ")))
	}
	if value == "" {
		return nil
	}
	if !p.Type.accepts(value) {
		return p.invalid(value, fmt.Sprintf("is not of type %q", string(p.Type)))
	}
	return nil
}

func (p Parameter) invalid(value, reason string) error {
	return &gateway.ValidationError{Field: p.Name, Value: value, Reason: reason}
}

func (t TypeClass) accepts(value string) bool {
	value = strings.ReplaceAll(value, ".", "")
	switch t {
	case Numeric:
		return isDigits(value)
	case Alpha:
		return isLetters(value)
	case Alnum:
		return isAlnum(value)
	case AlnumDash:
		return isAlnum(strings.ReplaceAll(value, "-", ""))
	case AlnumSemicolon:
		return isAlnum(strings.ReplaceAll(value, ";", ""))
	case AlnumAt:
		return isAlnum(strings.ReplaceAll(value, "@", ""))
	default:
		return true
	}
}

// Schema is a backend's parameter list
type Schema []Parameter

// Lookup finds a parameter by name
func (s Schema) Lookup(name string) (Parameter, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// ByCode finds a parameter by bank field code
func (s Schema) ByCode(code int) (Parameter, bool) {
	for _, p := range s {
		if p.Code != 0 && p.Code == code {
			return p, true
		}
	}
	return Parameter{}, false
}

// Validate checks every field that the schema describes
func (s Schema) Validate(fields gateway.Fields) error {
	for _, field := range fields {
		p, ok := s.Lookup(field.Name)
		if !ok {
			continue
		}
		if err := p.Check(field.Value); err != nil {
			return err
		}
	}
	return nil
}

// Resolve merges explicit call values, configured values and schema defaults,
// first present value winning, in schema order. Explicit fields the schema
// does not describe are kept after the described ones. A required field
// missing from all three tiers, or a value failing its check, is an error.
func (s Schema) Resolve(explicit, configured gateway.Fields) (gateway.Fields, error) {
	var resolved gateway.Fields
	for _, p := range s {
		value, ok := explicit.Lookup(p.Name)
		if !ok {
			value, ok = configured.Lookup(p.Name)
		}
		if !ok && p.Default != nil {
			value, ok = p.Default(), true
		}
		if !ok {
			if p.Required {
				return nil, &gateway.ValidationError{Field: p.Name, Reason: "required parameter is missing"}
			}
			continue
		}
		if err := p.Check(value); err != nil {
			return nil, err
		}
		resolved = append(resolved, gateway.Field{Name: p.Name, Value: value})
	}
	for _, field := range explicit {
		if _, described := s.Lookup(field.Name); !described {
			resolved.Set(field.Name, field.Value)
		}
	}
	return resolved, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func quoted(list []string) []string {
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = fmt.Sprintf("%q", item)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && ((c|0x20) < 'a' || (c|0x20) > 'z') {
			return false
		}
	}
	return true
}
