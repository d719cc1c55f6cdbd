// Package inputval validates user input from HTTP requests.
//
// Validate checks struct fields against `validate` tags (required,
// max=N, email) and uses the `label` tag for human-readable messages.
// The standalone Is* helpers cover ad-hoc checks in handlers.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Result collects validation failures in field order.
type Result struct {
	errs []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the first failure message, or "" if none.
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0]
}

// All returns every failure message.
func (r Result) All() []string { return r.errs }

// Validate checks the string fields of a struct against their
// `validate` tags. Unsupported rules are ignored so callers can share
// input structs with other layers.
func Validate(input any) Result {
	var res Result

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		if field.Type.Kind() != reflect.String {
			continue
		}

		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := v.Field(i).String()

		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			switch {
			case rule == "required":
				if strings.TrimSpace(value) == "" {
					res.errs = append(res.errs, fmt.Sprintf("%s is required.", label))
				}
			case strings.HasPrefix(rule, "max="):
				n, err := strconv.Atoi(strings.TrimPrefix(rule, "max="))
				if err == nil && len(value) > n {
					res.errs = append(res.errs, fmt.Sprintf("%s must be at most %d characters.", label, n))
				}
			case rule == "email":
				if strings.TrimSpace(value) != "" && !IsValidEmail(value) {
					res.errs = append(res.errs, fmt.Sprintf("%s must be a valid email address.", label))
				}
			case rule == "objectid":
				if strings.TrimSpace(value) != "" && !IsValidObjectID(value) {
					res.errs = append(res.errs, fmt.Sprintf("%s must be a valid id.", label))
				}
			}
		}
	}
	return res
}

// IsValidEmail checks an address in plain local@domain form. Display
// names ("Jane <jane@x>") are rejected; single-label domains are
// accepted since they are useful in dev environments.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if domain == "" {
		return false
	}
	if strings.ContainsAny(email, " \t<>") {
		return false
	}
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// IsValidObjectID reports whether s is a 24-character hex string, the
// textual form of a Mongo ObjectID. Surrounding whitespace is ignored.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
