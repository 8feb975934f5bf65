package validator

// Raw rule descriptions. These are stable identifiers: the translation table
// below keys on them, and the submission service matches them when mapping
// storage failures back to fields. Change a raw message and both break.
const (
	RawNameRequired     = "name: required"
	RawNameTooLong      = "name: too long"
	RawNameInvalidChars = "name: invalid characters"

	RawEmailRequired          = "email: required"
	RawEmailTooLong           = "email: too long"
	RawEmailInvalid           = "email: invalid"
	RawEmailAlreadyRegistered = "email: already registered"

	RawAttendanceInvalid = "attendance: must be yes or no"

	RawGuestsNotInteger = "numberOfGuests: not an integer"
	RawGuestsOutOfRange = "numberOfGuests: out of range"
	RawGuestsMustBeZero = "numberOfGuests: must be zero when not attending"

	RawGuestNamesInvalid       = "guestNames: not a list of strings"
	RawGuestNamesTooMany       = "guestNames: too many"
	RawGuestNamesMustBeEmpty   = "guestNames: must be empty when not attending"
	RawGuestNamesCountMismatch = "guestNames: count mismatch"

	RawGuestNameEmpty        = "guestName: required"
	RawGuestNameTooLong      = "guestName: too long"
	RawGuestNameInvalidChars = "guestName: invalid characters"

	RawDietaryTooLong = "dietaryRestrictions: too long"
	RawNotesTooLong   = "notes: too long"
)

var translations = map[string]string{
	RawNameRequired:     "Please enter your name",
	RawNameTooLong:      "Name must be 100 characters or less",
	RawNameInvalidChars: "Name may only contain letters, spaces, hyphens and apostrophes",

	RawEmailRequired:          "Please enter your email address",
	RawEmailTooLong:           "Email must be 254 characters or less",
	RawEmailInvalid:           "Please enter a valid email address",
	RawEmailAlreadyRegistered: "This email address has already been used to RSVP",

	RawAttendanceInvalid: "Please let us know if you are attending",

	RawGuestsNotInteger: "Number of guests must be a whole number",
	RawGuestsOutOfRange: "You may bring between 0 and 10 additional guests",
	RawGuestsMustBeZero: "Guests cannot be added when you are not attending",

	RawGuestNamesInvalid:       "Guest names must be a list of names",
	RawGuestNamesTooMany:       "A party cannot exceed 10 additional guests",
	RawGuestNamesMustBeEmpty:   "Guest names cannot be added when you are not attending",
	RawGuestNamesCountMismatch: "Please provide a name for each additional guest",

	RawGuestNameEmpty:        "Please enter this guest's name",
	RawGuestNameTooLong:      "Guest name must be 100 characters or less",
	RawGuestNameInvalidChars: "Guest name may only contain letters, spaces, hyphens and apostrophes",

	RawDietaryTooLong: "Dietary restrictions must be 500 characters or less",
	RawNotesTooLong:   "Notes must be 1000 characters or less",
}

// Translate maps a raw rule description to its user-facing text. Unknown
// descriptions pass through unchanged.
func Translate(raw string) string {
	if msg, ok := translations[raw]; ok {
		return msg
	}
	return raw
}
