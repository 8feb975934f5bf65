package mapper

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_GuestCountAliasResolved(t *testing.T) {
	p := FromJSON(map[string]any{
		"name":       "Jane Smith",
		"guestCount": float64(2),
	})

	assert.Equal(t, float64(2), p["numberOfGuests"])
	assert.NotContains(t, p, "guestCount")
}

func TestFromJSON_CanonicalKeyWinsOverAlias(t *testing.T) {
	p := FromJSON(map[string]any{
		"numberOfGuests": float64(3),
		"guestCount":     float64(9),
	})

	assert.Equal(t, float64(3), p["numberOfGuests"])
	assert.NotContains(t, p, "guestCount")
}

func TestFromForm_BasicFields(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Jane Smith")
	form.Set("email", "jane@example.com")
	form.Set("attendance", "yes")
	form.Set("numberOfGuests", "1")
	form.Set("guestName0", "Tom Smith")
	form.Set("notes", "see you there")

	p := FromForm(form)

	assert.Equal(t, "Jane Smith", p["name"])
	assert.Equal(t, "jane@example.com", p["email"])
	assert.Equal(t, "yes", p["attendance"])
	assert.Equal(t, "1", p["numberOfGuests"])
	assert.Equal(t, []string{"Tom Smith"}, p["guestNames"])
	assert.Equal(t, "see you there", p["notes"])
	assert.NotContains(t, p, "dietaryRestrictions")
}

func TestFromForm_GuestCountAlias(t *testing.T) {
	form := url.Values{}
	form.Set("guestCount", "4")

	p := FromForm(form)
	assert.Equal(t, "4", p["numberOfGuests"])
}

func TestDecodeGuestNames_IndexedFields(t *testing.T) {
	form := url.Values{}
	form.Set("guestName0", "Anna Lee")
	form.Set("guestName1", "Ben Cole")

	assert.Equal(t, []string{"Anna Lee", "Ben Cole"}, DecodeGuestNames(form))
}

func TestDecodeGuestNames_IndexedFieldsStopAtGap(t *testing.T) {
	form := url.Values{}
	form.Set("guestName0", "Anna Lee")
	form.Set("guestName2", "Ben Cole")

	assert.Equal(t, []string{"Anna Lee"}, DecodeGuestNames(form))
}

func TestDecodeGuestNames_BracketFields(t *testing.T) {
	form := url.Values{}
	form.Set("guestNames[0]", "Anna Lee")
	form.Set("guestNames[1]", "Ben Cole")

	assert.Equal(t, []string{"Anna Lee", "Ben Cole"}, DecodeGuestNames(form))
}

func TestDecodeGuestNames_JSONField(t *testing.T) {
	form := url.Values{}
	form.Set("guestNames", `["Anna Lee","Ben Cole"]`)

	assert.Equal(t, []string{"Anna Lee", "Ben Cole"}, DecodeGuestNames(form))
}

func TestDecodeGuestNames_MalformedJSONIgnored(t *testing.T) {
	form := url.Values{}
	form.Set("guestNames", `not json`)

	assert.Nil(t, DecodeGuestNames(form))
}

// When several encodings are present at once, the indexed fields win.
func TestDecodeGuestNames_PriorityOrder(t *testing.T) {
	form := url.Values{}
	form.Set("guestName0", "Indexed Winner")
	form.Set("guestNames[0]", "Bracket Loser")
	form.Set("guestNames", `["JSON Loser"]`)

	got := DecodeGuestNames(form)
	require.Len(t, got, 1)
	assert.Equal(t, "Indexed Winner", got[0])
}

func TestDecodeGuestNames_NoEncodingPresent(t *testing.T) {
	assert.Nil(t, DecodeGuestNames(url.Values{}))
}
