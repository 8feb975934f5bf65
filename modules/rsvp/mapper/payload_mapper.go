// Package mapper normalizes the wire encodings a submission can arrive in
// (JSON body or form post) into the validator's raw payload.
package mapper

import (
	"encoding/json"
	"fmt"
	"net/url"

	"wedding-rsvp/modules/rsvp/validator"
)

// FromJSON builds a raw payload from a decoded JSON body. guestCount is an
// accepted alias for numberOfGuests, resolved here, upstream of validation.
func FromJSON(body map[string]any) validator.Payload {
	p := validator.Payload{}
	for k, v := range body {
		p[k] = v
	}
	if _, ok := p["numberOfGuests"]; !ok {
		if alias, ok := p["guestCount"]; ok {
			p["numberOfGuests"] = alias
		}
	}
	delete(p, "guestCount")
	return p
}

// FromForm builds a raw payload from a form-encoded submission.
func FromForm(form url.Values) validator.Payload {
	p := validator.Payload{
		"name":       form.Get("name"),
		"email":      form.Get("email"),
		"attendance": form.Get("attendance"),
	}
	if form.Has("numberOfGuests") {
		p["numberOfGuests"] = form.Get("numberOfGuests")
	} else if form.Has("guestCount") {
		p["numberOfGuests"] = form.Get("guestCount")
	}
	for _, key := range []string{"dietaryRestrictions", "songRequests", "notes"} {
		if v := form.Get(key); v != "" {
			p[key] = v
		}
	}
	if names := DecodeGuestNames(form); len(names) > 0 {
		p["guestNames"] = names
	}
	return p
}

// guestNameDecoder extracts an ordered guest-name list from form values, or
// nothing if the encoding it understands is absent.
type guestNameDecoder func(url.Values) []string

// The three encodings observed on the wire, in priority order. The first
// decoder yielding at least one name wins.
var guestNameDecoders = []guestNameDecoder{
	decodeIndexedFields,
	decodeBracketFields,
	decodeJSONField,
}

func DecodeGuestNames(form url.Values) []string {
	for _, decode := range guestNameDecoders {
		if names := decode(form); len(names) > 0 {
			return names
		}
	}
	return nil
}

// guestName0, guestName1, ...
func decodeIndexedFields(form url.Values) []string {
	var names []string
	for i := 0; ; i++ {
		key := fmt.Sprintf("guestName%d", i)
		if !form.Has(key) {
			break
		}
		names = append(names, form.Get(key))
	}
	return names
}

// guestNames[0], guestNames[1], ...
func decodeBracketFields(form url.Values) []string {
	var names []string
	for i := 0; ; i++ {
		key := fmt.Sprintf("guestNames[%d]", i)
		if !form.Has(key) {
			break
		}
		names = append(names, form.Get(key))
	}
	return names
}

// A single guestNames field holding a JSON-encoded array.
func decodeJSONField(form url.Values) []string {
	raw := form.Get("guestNames")
	if raw == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil
	}
	return names
}
