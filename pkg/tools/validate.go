package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// FieldKind is the shape of an argument value.
type FieldKind int

const (
	// KindString is a single string value.
	KindString FieldKind = iota

	// KindStringList is an array of strings. Anything that is not an array
	// is coerced to an empty list rather than rejected.
	KindStringList
)

// FieldRule describes one recognized argument and its bounds.
type FieldRule struct {
	// Name is the JSON property name.
	Name string

	// Label names the field in messages ("Title").
	Label string

	// ItemLabel names one list element in messages ("Tag").
	ItemLabel string

	Kind     FieldKind
	Required bool

	// MaxLength bounds a string, or each element of a list, in characters.
	MaxLength int

	// MaxItems bounds the number of list elements.
	MaxItems int

	// Description is copied into the JSON schema.
	Description string
}

// ValidationError reports bad, missing or oversized input. Its message is
// shown to the caller verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Arguments holds validated argument values keyed by field name.
type Arguments struct {
	values map[string]string
	lists  map[string][]string
}

// NewArguments builds Arguments directly, bypassing validation.
func NewArguments(values map[string]string, lists map[string][]string) Arguments {
	if values == nil {
		values = map[string]string{}
	}
	if lists == nil {
		lists = map[string][]string{}
	}
	return Arguments{values: values, lists: lists}
}

// String returns a string argument, or "" when absent.
func (a Arguments) String(name string) string {
	return a.values[name]
}

// Strings returns a list argument. The result is never nil.
func (a Arguments) Strings(name string) []string {
	if l, ok := a.lists[name]; ok && l != nil {
		return l
	}
	return []string{}
}

// Validate checks raw JSON arguments against rules and extracts the
// recognized fields. Unrecognized properties are ignored. A property given
// more than once is rejected, since JSON decoders disagree on which copy wins.
func Validate(rules []FieldRule, raw json.RawMessage) (Arguments, error) {
	args := NewArguments(nil, nil)

	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = json.RawMessage("{}")
	}
	if !gjson.ValidBytes(raw) {
		return args, invalid("", "Arguments must be a JSON object")
	}
	root := gjson.ParseBytes(raw)
	if root.Type == gjson.Null {
		root = gjson.Parse("{}")
	}
	if !root.IsObject() {
		return args, invalid("", "Arguments must be a JSON object")
	}
	if dup := duplicateKey(root); dup != "" {
		return args, invalid(dup, "Duplicate argument: %s", dup)
	}

	for _, rule := range rules {
		value := root.Get(rule.Name)
		switch rule.Kind {
		case KindString:
			s, err := validateString(rule, value)
			if err != nil {
				return args, err
			}
			args.values[rule.Name] = s
		case KindStringList:
			l, err := validateList(rule, value)
			if err != nil {
				return args, err
			}
			args.lists[rule.Name] = l
		}
	}
	return args, nil
}

func duplicateKey(obj gjson.Result) string {
	seen := make(map[string]bool)
	dup := ""
	obj.ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if seen[k] {
			dup = k
			return false
		}
		seen[k] = true
		return true
	})
	return dup
}

func validateString(rule FieldRule, value gjson.Result) (string, error) {
	if value.Type != gjson.String || value.Str == "" {
		if rule.Required {
			return "", invalid(rule.Name, "%s is required and must be a string", rule.Label)
		}
		if value.Exists() && value.Type != gjson.Null && value.Type != gjson.String {
			return "", invalid(rule.Name, "%s must be a string", rule.Label)
		}
		return "", nil
	}

	s := value.Str
	if rule.MaxLength > 0 && utf8.RuneCountInString(s) > rule.MaxLength {
		return "", invalid(rule.Name, "%s must be at most %d characters", rule.Label, rule.MaxLength)
	}
	if strings.ContainsRune(s, 0) {
		return "", invalid(rule.Name, "%s contains invalid characters", rule.Label)
	}
	return s, nil
}

func validateList(rule FieldRule, value gjson.Result) ([]string, error) {
	if !value.IsArray() {
		return []string{}, nil
	}

	items := value.Array()
	if rule.MaxItems > 0 && len(items) > rule.MaxItems {
		label := strings.ToLower(rule.Label)
		return nil, invalid(rule.Name, "Maximum %d %s allowed", rule.MaxItems, label)
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, invalid(rule.Name, "%s at index %d must be a string", rule.ItemLabel, i)
		}
		if rule.MaxLength > 0 && utf8.RuneCountInString(item.Str) > rule.MaxLength {
			return nil, invalid(rule.Name, "%s at index %d must be at most %d characters", rule.ItemLabel, i, rule.MaxLength)
		}
		if strings.ContainsRune(item.Str, 0) {
			return nil, invalid(rule.Name, "%s at index %d contains invalid characters", rule.ItemLabel, i)
		}
		out = append(out, item.Str)
	}
	return out, nil
}

// Truncate cuts s to at most max characters and trims surrounding
// whitespace. A max of zero or less only trims.
func Truncate(s string, max int) string {
	if max > 0 && utf8.RuneCountInString(s) > max {
		runes := []rune(s)
		s = string(runes[:max])
	}
	return strings.TrimSpace(s)
}

// Bounded returns a copy of args with every string cut to its field's
// maximum length and trimmed. It runs after Validate, so in practice only
// trimming changes anything, but it is applied unconditionally before any
// script is built.
func (a Arguments) Bounded(rules []FieldRule) Arguments {
	out := NewArguments(nil, nil)
	for _, rule := range rules {
		switch rule.Kind {
		case KindString:
			if s, ok := a.values[rule.Name]; ok {
				out.values[rule.Name] = Truncate(s, rule.MaxLength)
			}
		case KindStringList:
			if l, ok := a.lists[rule.Name]; ok {
				bounded := make([]string, 0, len(l))
				for _, item := range l {
					bounded = append(bounded, Truncate(item, rule.MaxLength))
				}
				out.lists[rule.Name] = bounded
			}
		}
	}
	return out
}

// SchemaFor derives a JSON schema from field rules.
func SchemaFor(rules []FieldRule) map[string]interface{} {
	properties := make(map[string]interface{}, len(rules))
	var required []string
	for _, rule := range rules {
		prop := map[string]interface{}{}
		switch rule.Kind {
		case KindString:
			prop["type"] = "string"
			if rule.MaxLength > 0 {
				prop["maxLength"] = rule.MaxLength
			}
		case KindStringList:
			item := map[string]interface{}{"type": "string"}
			if rule.MaxLength > 0 {
				item["maxLength"] = rule.MaxLength
			}
			prop["type"] = "array"
			prop["items"] = item
			if rule.MaxItems > 0 {
				prop["maxItems"] = rule.MaxItems
			}
		}
		if rule.Description != "" {
			prop["description"] = rule.Description
		}
		properties[rule.Name] = prop
		if rule.Required {
			required = append(required, rule.Name)
		}
	}
	return BaseToolSchema(properties, required)
}
