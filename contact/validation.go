package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SubmitParams is the raw contact-form payload before normalization.
type SubmitParams struct {
	Name    string
	Email   string
	Phone   *string
	Service string
	Message string
}

// emailRe is an RFC-lite shape check: word characters optionally separated
// by single '.' or '-', and a final segment of 2-3 letters repeated
// one-or-more times (covers ".co.uk" style). Not full RFC 5322.
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.[a-zA-Z]{2,3})+$`)

// looseEmailRe is the cheap upfront shape check used by the request
// handler before anything else runs: non-space+@non-space+.non-space+.
var looseEmailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// phoneRe leans international: optional '+', first digit 1-9, then up to
// 15 further digits.
var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// MissingRequired returns the names of required fields that are empty
// after trimming. Phone is optional and never reported.
func MissingRequired(p SubmitParams) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", p.Name},
		{"email", p.Email},
		{"service", p.Service},
		{"message", p.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// LooseEmailOK reports whether the email passes the handler's cheap
// upfront shape check.
func LooseEmailOK(email string) bool {
	return looseEmailRe.MatchString(strings.TrimSpace(email))
}

// FieldViolation is a single failed rule of the full ruleset.
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// Validate applies the full ruleset to the params. Rules are applied
// independently, not short-circuited, so all violations are reported.
func Validate(p SubmitParams) []FieldViolation {
	var violations []FieldViolation
	add := func(field, reason string) {
		violations = append(violations, FieldViolation{Field: field, Reason: reason})
	}

	// Length bounds are characters, not bytes; Hindi-script names and
	// messages are the common case here, not an edge.
	name := strings.TrimSpace(p.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		add("name", "must be between 2 and 50 characters")
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if !emailRe.MatchString(email) {
		add("email", "must be a valid email address")
	}

	if p.Phone != nil && strings.TrimSpace(*p.Phone) != "" {
		if !phoneRe.MatchString(strings.TrimSpace(*p.Phone)) {
			add("phone", "must be a valid phone number")
		}
	}

	if !isValidService(p.Service) {
		add("service", "must be one of the offered service categories")
	}

	message := strings.TrimSpace(p.Message)
	if n := utf8.RuneCountInString(message); n < 10 || n > 1000 {
		add("message", "must be between 10 and 1000 characters")
	}

	return violations
}

// normalize trims and lowercases the fields the way they are persisted.
func normalize(p SubmitParams) Submission {
	subm := Submission{
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.ToLower(strings.TrimSpace(p.Email)),
		Service: p.Service,
		Message: strings.TrimSpace(p.Message),
		Status:  StatusNew,
	}
	if p.Phone != nil {
		phone := strings.TrimSpace(*p.Phone)
		if phone != "" {
			subm.Phone = &phone
		}
	}
	return subm
}
