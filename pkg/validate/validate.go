// Package validate checks request and command input using struct tags.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty (strings are trimmed)
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	in=a,b,c            value must be one of the listed items
//	regex=pattern       value must match the pattern (no commas)
//	confirmed           value must equal the sibling field it confirms
//
// Example:
//
//	type Input struct {
//	    Customer string `json:"customer" validate:"required,max=80"`
//	    Payment  string `json:"payment"  validate:"required,in=pix,cash,card"`
//	    Note     string `json:"note"     validate:"nullable,max=280"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Errors maps a json field name to its first failing message.
type Errors map[string]string

// Struct validates all exported fields of v that carry a `validate` tag.
// An empty map means no errors.
func Struct(v any) Errors {
	errs := make(Errors)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		value := rv.Field(i)
		name := jsonFieldName(field)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break
			}
		}
	}

	return errs
}

// HasErrors reports whether errs holds at least one message.
func HasErrors(errs Errors) bool { return len(errs) > 0 }

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, e[f])
	}
	return strings.Join(parts, " ")
}

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	raw := strings.TrimSpace(fmt.Sprintf("%v", v.Interface()))
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "min":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}

	case "max":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)

	case "regex":
		re, err := compiled(param)
		if err != nil {
			return fmt.Sprintf("The %s has an invalid validation pattern.", field)
		}
		if !re.MatchString(raw) {
			return fmt.Sprintf("The %s format is invalid.", field)
		}

	case "confirmed":
		other := findConfirmedSibling(parent, field)
		if other == nil || fmt.Sprintf("%v", other.Interface()) != fmt.Sprintf("%v", v.Interface()) {
			return fmt.Sprintf("The %s confirmation does not match.", strings.TrimSuffix(field, confirmationSuffix))
		}
	}

	return ""
}

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var patterns sync.Map // pattern → *regexp.Regexp

func compiled(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

const confirmationSuffix = "_confirmation"

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

// splitRules splits the tag on commas but keeps the values of an in= list
// together: "required,in=a,b,max=3" → ["required", "in=a,b", "max=3"].
func splitRules(tag string) []string {
	var rules []string
	for _, tok := range strings.Split(tag, ",") {
		tok = strings.TrimSpace(tok)
		if n := len(rules); n > 0 && strings.HasPrefix(rules[n-1], "in=") && !isRuleName(tok) {
			rules[n-1] += "," + tok
			continue
		}
		rules = append(rules, tok)
	}
	return rules
}

func isRuleName(tok string) bool {
	key, _, _ := strings.Cut(tok, "=")
	switch key {
	case "required", "nullable", "email", "min", "max", "in", "regex", "confirmed":
		return true
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if r == target {
			return true
		}
	}
	return false
}

// findConfirmedSibling resolves the partner of a confirmed rule. Tagging
// password_confirmation compares against password, and tagging password
// compares against password_confirmation.
func findConfirmedSibling(parent reflect.Value, field string) *reflect.Value {
	target := strings.TrimSuffix(field, confirmationSuffix)
	if target == field {
		target = field + confirmationSuffix
	}
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == target {
			v := parent.Field(i)
			return &v
		}
	}
	return nil
}
