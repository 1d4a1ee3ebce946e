package forms

import (
	"testing"
	"time"

	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNameResolution(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	inq := n.Normalize(model.SchemaContact, map[string]any{"name": "  Jane Doe  "})
	assert.Equal(t, "Jane Doe", inq.Name)

	inq = n.Normalize(model.SchemaContact, map[string]any{"firstName": "Jane", "lastName": "Doe"})
	assert.Equal(t, "Jane Doe", inq.Name)

	// A blank name falls through to the split fields.
	inq = n.Normalize(model.SchemaContact, map[string]any{"name": "   ", "firstName": "Jane"})
	assert.Equal(t, "Jane", inq.Name)
}

func TestNormalizePhonePolicies(t *testing.T) {
	payload := map[string]any{"phone": "+447700900123", "phoneCountry": "+44"}

	// prefer-full keeps a number that already carries a country code.
	inq := NewNormalizer(PhonePreferFull).Normalize(model.SchemaQuote, payload)
	assert.Equal(t, "+447700900123", inq.Phone)

	// always-combine prefixes regardless.
	inq = NewNormalizer(PhoneAlwaysCombine).Normalize(model.SchemaQuote, payload)
	assert.Equal(t, "+44+447700900123", inq.Phone)

	// A bare national number gets the prefix under either policy.
	national := map[string]any{"phone": "7700900123", "phoneCountry": "+44"}
	inq = NewNormalizer(PhonePreferFull).Normalize(model.SchemaQuote, national)
	assert.Equal(t, "+447700900123", inq.Phone)

	// No country code: the phone field is used as-is.
	inq = NewNormalizer(PhonePreferFull).Normalize(model.SchemaQuote, map[string]any{"phone": "07700900123"})
	assert.Equal(t, "07700900123", inq.Phone)
}

func TestNormalizeCategoryFallbacks(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	assert.Equal(t, "wedding", n.Normalize(model.SchemaContact, map[string]any{"eventType": "wedding"}).Category)
	assert.Equal(t, "Instagram", n.Normalize(model.SchemaContact, map[string]any{"howYouFoundUs": "Instagram"}).Category)
	assert.Equal(t, "Quote Request", n.Normalize(model.SchemaContact, map[string]any{}).Category)
}

func TestNormalizeDatePriority(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	inq := n.Normalize(model.SchemaQuote, map[string]any{"dateFrom": "2027-06-01", "dateTo": "2027-06-03"})
	require.NotNil(t, inq.Dates)
	assert.Equal(t, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), inq.Dates.From)
	assert.Equal(t, time.Date(2027, 6, 3, 0, 0, 0, 0, time.UTC), inq.Dates.To)
	assert.Equal(t, "Tuesday, June 1, 2027 - Thursday, June 3, 2027", inq.DatesDisplay)

	// dateFrom alone becomes a degenerate range.
	inq = n.Normalize(model.SchemaQuote, map[string]any{"dateFrom": "2027-06-01"})
	require.NotNil(t, inq.Dates)
	assert.True(t, inq.Dates.Single())

	// eventDate is the last resort.
	inq = n.Normalize(model.SchemaBooking, map[string]any{"eventDate": "2027-06-01"})
	require.NotNil(t, inq.Dates)
	assert.True(t, inq.Dates.Single())

	// Nothing parseable leaves the range unset.
	inq = n.Normalize(model.SchemaQuote, map[string]any{"dateFrom": "not-a-date"})
	assert.Nil(t, inq.Dates)
	assert.Equal(t, NotSpecified, inq.DatesDisplay)
}

func TestNormalizeInvertedRangeTreatedAsUnset(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	inq := n.Normalize(model.SchemaQuote, map[string]any{"dateFrom": "2027-06-03", "dateTo": "2027-06-01"})
	assert.Nil(t, inq.Dates, "an inverted pair must never produce a range with to < from")
	assert.Equal(t, NotSpecified, inq.DatesDisplay)
}

func TestNormalizeDurationLabels(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	inq := n.Normalize(model.SchemaQuote, map[string]any{"duration": []any{"under4hours", "above4hours"}})
	assert.Equal(t, "Under 4 hours & Above 4 hours", inq.DurationLabel)

	// Unrecognized codes pass through verbatim.
	inq = n.Normalize(model.SchemaQuote, map[string]any{"duration": []any{"under4hours", "overnight"}})
	assert.Equal(t, "Under 4 hours & overnight", inq.DurationLabel)

	// A scalar is used directly.
	inq = n.Normalize(model.SchemaQuote, map[string]any{"duration": "All day"})
	assert.Equal(t, "All day", inq.DurationLabel)

	inq = n.Normalize(model.SchemaQuote, map[string]any{})
	assert.Equal(t, NotSpecified, inq.DurationLabel)
}

func TestNormalizePackages(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	inq := n.Normalize(model.SchemaQuote, map[string]any{"preferredPackage": []any{"gold", "destinationwedding"}})
	assert.Equal(t, "Gold, Destination Wedding", inq.PackageLabel)
	assert.Equal(t, []string{"gold", "destinationwedding"}, inq.Packages)

	// The hyphenated legacy spelling resolves to the same code.
	inq = n.Normalize(model.SchemaQuote, map[string]any{"preferredPackage": []any{"destination-wedding"}})
	assert.Equal(t, "Destination Wedding", inq.PackageLabel)
	assert.Equal(t, []string{"destinationwedding"}, inq.Packages)

	inq = n.Normalize(model.SchemaQuote, map[string]any{})
	assert.Equal(t, NotSpecified, inq.PackageLabel)
	assert.Empty(t, inq.Packages)
}

func TestNormalizeMessageSynthesis(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	inq := n.Normalize(model.SchemaQuote, map[string]any{"message": "Looking forward!"})
	assert.Equal(t, "Looking forward!", inq.Message)

	inq = n.Normalize(model.SchemaQuote, map[string]any{
		"venue":            "The Grand Hall",
		"duration":         []any{"under4hours"},
		"preferredPackage": []any{"gold"},
	})
	assert.Equal(t, "Venue: The Grand Hall\nDuration: Under 4 hours\nPreferred Package: Gold", inq.Message)

	// The operator message is never empty, even on an empty payload.
	inq = n.Normalize(model.SchemaContact, map[string]any{})
	assert.NotEmpty(t, inq.Message)
}

// Normalization is idempotent: feeding a canonical record's fields back
// through produces the same record.
func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(PhonePreferFull)

	first := n.Normalize(model.SchemaQuote, map[string]any{
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane@example.com",
		"phone":            "07700900123",
		"eventType":        "wedding",
		"dateFrom":         "2027-06-01",
		"dateTo":           "2027-06-01",
		"duration":         []any{"under4hours"},
		"venue":            "The Grand Hall",
		"preferredPackage": []any{"gold"},
		"message":          "Hello",
	})

	second := n.Normalize(model.SchemaQuote, map[string]any{
		"name":             first.Name,
		"email":            first.Email,
		"phone":            first.Phone,
		"eventType":        first.Category,
		"dateFrom":         first.Dates.From.Format("2006-01-02"),
		"dateTo":           first.Dates.To.Format("2006-01-02"),
		"duration":         first.DurationLabel,
		"venue":            first.Venue,
		"preferredPackage": first.PackageLabel,
		"message":          first.Message,
	})

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.Phone, second.Phone)
	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Dates, second.Dates)
	assert.Equal(t, first.DatesDisplay, second.DatesDisplay)
	assert.Equal(t, first.DurationLabel, second.DurationLabel)
	assert.Equal(t, first.Venue, second.Venue)
	assert.Equal(t, first.Packages, second.Packages)
	assert.Equal(t, first.PackageLabel, second.PackageLabel)
	assert.Equal(t, first.Message, second.Message)
}
