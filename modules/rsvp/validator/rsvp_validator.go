package validator

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"wedding-rsvp/core/constants"
)

// Payload is the raw, untrusted submission: field name to raw value. Values
// may be strings, numbers or arrays depending on the wire encoding; the
// engine tolerates all of them and never returns a Go error for bad data.
type Payload map[string]any

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type NormalizedRSVP struct {
	Name                string
	Email               string
	IsAttending         bool
	NumberOfGuests      int
	GuestNames          []string
	DietaryRestrictions *string
	SongRequests        *string
	Notes               *string
}

type Result struct {
	Success bool
	Data    *NormalizedRSVP
	Errors  []FieldError
}

var nameRe = regexp.MustCompile(`^[A-Za-z\s'-]+$`)

// Validate applies every field rule independently so multiple errors surface
// together, then the cross-field attendance/guest rules. Error messages are
// the stable raw rule descriptions run through the translation table.
func Validate(p Payload) Result {
	var errs []FieldError
	add := func(field, raw string) {
		errs = append(errs, FieldError{Field: field, Message: Translate(raw)})
	}

	name := strings.TrimSpace(stringField(p, "name"))
	switch {
	case name == "":
		add("name", RawNameRequired)
	case len(name) > constants.MaxNameLength:
		add("name", RawNameTooLong)
	case !nameRe.MatchString(name):
		add("name", RawNameInvalidChars)
	}

	email := strings.TrimSpace(stringField(p, "email"))
	errs = append(errs, ValidateEmail(email)...)

	attendance := strings.TrimSpace(stringField(p, "attendance"))
	if attendance != "yes" && attendance != "no" {
		add("attendance", RawAttendanceInvalid)
	}

	guests, guestsOK := intField(p, "numberOfGuests")
	switch {
	case !guestsOK:
		add("numberOfGuests", RawGuestsNotInteger)
	case guests < 0 || guests > constants.MaxGuests:
		add("numberOfGuests", RawGuestsOutOfRange)
	}

	guestNames, guestNamesOK := stringSliceField(p, "guestNames")
	if !guestNamesOK {
		add("guestNames", RawGuestNamesInvalid)
	}

	if dietary := stringField(p, "dietaryRestrictions"); len(dietary) > constants.MaxDietaryLength {
		add("dietaryRestrictions", RawDietaryTooLong)
	}
	if notes := stringField(p, "notes"); len(notes) > constants.MaxNotesLength {
		add("notes", RawNotesTooLong)
	}

	// Rule C holds regardless of any other failure.
	if guestNamesOK && len(guestNames) > constants.MaxGuests {
		add("guestNames", RawGuestNamesTooMany)
	}

	if len(errs) > 0 {
		return Result{Success: false, Errors: errs}
	}

	attending := attendance == "yes"

	// Rule A: a declined RSVP brings nobody.
	if !attending {
		if guests != 0 {
			add("numberOfGuests", RawGuestsMustBeZero)
		}
		if len(guestNames) != 0 {
			add("guestNames", RawGuestNamesMustBeEmpty)
		}
	}

	// Rule B: every additional guest is named, and nothing more.
	if attending && guests > 0 {
		if len(guestNames) != guests {
			add("guestNames", RawGuestNamesCountMismatch)
		} else {
			for i, gn := range guestNames {
				gn = strings.TrimSpace(gn)
				switch {
				case gn == "":
					add(fmt.Sprintf("guestNames.%d", i), RawGuestNameEmpty)
				case len(gn) > constants.MaxNameLength:
					add(fmt.Sprintf("guestNames.%d", i), RawGuestNameTooLong)
				case !nameRe.MatchString(gn):
					add(fmt.Sprintf("guestNames.%d", i), RawGuestNameInvalidChars)
				}
			}
		}
	}

	if len(errs) > 0 {
		return Result{Success: false, Errors: errs}
	}

	normalized := &NormalizedRSVP{
		Name:                name,
		Email:               email,
		IsAttending:         attending,
		NumberOfGuests:      guests,
		DietaryRestrictions: optionalField(p, "dietaryRestrictions"),
		SongRequests:        optionalField(p, "songRequests"),
		Notes:               optionalField(p, "notes"),
	}
	if attending && guests > 0 {
		normalized.GuestNames = make([]string, len(guestNames))
		for i, gn := range guestNames {
			normalized.GuestNames[i] = strings.TrimSpace(gn)
		}
	}

	return Result{Success: true, Data: normalized}
}

// ValidateEmail applies the email field rules alone. The availability
// endpoint uses it directly.
func ValidateEmail(email string) []FieldError {
	var errs []FieldError
	add := func(raw string) {
		errs = append(errs, FieldError{Field: "email", Message: Translate(raw)})
	}
	switch {
	case email == "":
		add(RawEmailRequired)
	case len(email) > constants.MaxEmailLength:
		add(RawEmailTooLong)
	default:
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			add(RawEmailInvalid)
		}
	}
	return errs
}

func stringField(p Payload, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}

func optionalField(p Payload, key string) *string {
	s := strings.TrimSpace(stringField(p, key))
	if s == "" {
		return nil
	}
	return &s
}

// intField tolerates the ways a count arrives on the wire: JSON number,
// string form value, or a typed int. Absent means zero.
func intField(p Payload, key string) (int, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, true
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func stringSliceField(p Payload, key string) ([]string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, true
	}
	switch vv := v.(type) {
	case []string:
		return vv, true
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
