// Package schema declares the response-shape contracts that the suite checks
// API responses against, and the validator that applies them to decoded JSON
// values.
//
// Validation is total: every declared constraint is checked and every
// violation is reported, never just the first one. There is no type
// coercion; a JSON string where a number is expected is a violation.
package schema

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Type identifies the JSON shape a Schema node expects.
type Type string

const (
	Object  Type = "object"
	Array   Type = "array"
	String  Type = "string"
	Number  Type = "number"
	Integer Type = "integer"
	Boolean Type = "boolean"
)

// String format constraints understood by the validator.
const (
	FormatEmail    = "email"
	FormatURL      = "url"
	FormatDateTime = "date-time"
)

// Schema describes one node of an expected JSON shape. Object fields listed
// in Required must be present; fields declared in Properties but not in
// Required may be absent, but must match their schema when present. Fields
// the server sends that are not declared at all are ignored.
type Schema struct {
	Type       Type
	Format     string // optional string format constraint
	Properties map[string]*Schema
	Required   []string
	Items      *Schema // element shape for arrays
	Nullable   bool
}

// Violation describes one way in which a value failed its contract.
type Violation struct {
	Path       string // location of the offending value, e.g. "$.products[2].price"
	Constraint string // the constraint that failed, e.g. "type" or "format:email"
	Detail     string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Path, v.Constraint, v.Detail)
}

// ValidationError is returned by Contract.Parse when a body does not satisfy
// the contract. It carries every violation found.
type ValidationError struct {
	Contract   string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "response does not satisfy the %q contract (%d violations)",
		e.Contract, len(e.Violations))
	for _, v := range e.Violations {
		sb.WriteString("\n  ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Contract is a named Schema registered for one resource shape.
type Contract struct {
	Name string
	Root *Schema
}

// Validate checks v against the contract and returns all violations. An
// empty result means v satisfies the contract.
func (c *Contract) Validate(v ldvalue.Value) []Violation {
	var out []Violation
	c.Root.check("$", v, &out)
	return out
}

// Parse decodes raw JSON and validates it, returning the decoded value on
// success or a *ValidationError on failure. Malformed JSON is reported as a
// single violation at the root.
func (c *Contract) Parse(data []byte) (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return ldvalue.Null(), &ValidationError{
			Contract:   c.Name,
			Violations: []Violation{{Path: "$", Constraint: "json", Detail: err.Error()}},
		}
	}
	if violations := c.Validate(v); len(violations) > 0 {
		return ldvalue.Null(), &ValidationError{Contract: c.Name, Violations: violations}
	}
	return v, nil
}

func (s *Schema) check(path string, v ldvalue.Value, out *[]Violation) {
	if v.IsNull() {
		if !s.Nullable {
			*out = append(*out, typeViolation(path, s.Type, v))
		}
		return
	}

	switch s.Type {
	case Object:
		if v.Type() != ldvalue.ObjectType {
			*out = append(*out, typeViolation(path, s.Type, v))
			return
		}
		for _, name := range s.Required {
			if _, ok := v.TryGetByKey(name); !ok {
				*out = append(*out, Violation{
					Path:       path + "." + name,
					Constraint: "required",
					Detail:     "field is missing",
				})
			}
		}
		for _, name := range sortedKeys(s.Properties) {
			if field, ok := v.TryGetByKey(name); ok {
				s.Properties[name].check(path+"."+name, field, out)
			}
		}
	case Array:
		if v.Type() != ldvalue.ArrayType {
			*out = append(*out, typeViolation(path, s.Type, v))
			return
		}
		if s.Items != nil {
			for i := 0; i < v.Count(); i++ {
				s.Items.check(fmt.Sprintf("%s[%d]", path, i), v.GetByIndex(i), out)
			}
		}
	case String:
		if v.Type() != ldvalue.StringType {
			*out = append(*out, typeViolation(path, s.Type, v))
			return
		}
		if s.Format != "" {
			checkFormat(path, v.StringValue(), s.Format, out)
		}
	case Number:
		if v.Type() != ldvalue.NumberType {
			*out = append(*out, typeViolation(path, s.Type, v))
		}
	case Integer:
		if v.Type() != ldvalue.NumberType {
			*out = append(*out, typeViolation(path, s.Type, v))
			return
		}
		if !v.IsInt() {
			*out = append(*out, Violation{
				Path:       path,
				Constraint: "type",
				Detail:     fmt.Sprintf("expected integer, got %v", v.Float64Value()),
			})
		}
	case Boolean:
		if v.Type() != ldvalue.BoolType {
			*out = append(*out, typeViolation(path, s.Type, v))
		}
	}
}

func checkFormat(path, value, format string, out *[]Violation) {
	var detail string
	switch format {
	case FormatEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			detail = fmt.Sprintf("%q is not a valid email address", value)
		}
	case FormatURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			detail = fmt.Sprintf("%q is not a valid absolute URL", value)
		}
	case FormatDateTime:
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			detail = fmt.Sprintf("%q is not a valid RFC 3339 timestamp", value)
		}
	}
	if detail != "" {
		*out = append(*out, Violation{Path: path, Constraint: "format:" + format, Detail: detail})
	}
}

func typeViolation(path string, expected Type, v ldvalue.Value) Violation {
	return Violation{
		Path:       path,
		Constraint: "type",
		Detail:     fmt.Sprintf("expected %s, got %s", expected, v.Type()),
	}
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
