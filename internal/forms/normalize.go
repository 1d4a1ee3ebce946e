// Package forms turns raw form payloads into validated inquiries. The site's
// forms have gone through several revisions and the live payload shapes
// reflect all of them; normalization is the one place that absorbs that
// variability instead of failing.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mianvisuals/studio-api/internal/domain/model"
)

// PhonePolicy pins down how a country-code prefix combines with the phone
// field when a payload carries both. The historical forms were inconsistent
// here, so the behavior is explicit configuration rather than a guess.
type PhonePolicy string

const (
	// PhonePreferFull keeps the phone field as-is whenever it already
	// carries a country code (leading "+" or "00"), and prefixes the
	// country code otherwise.
	PhonePreferFull PhonePolicy = "prefer-full"

	// PhoneAlwaysCombine prefixes the country code whenever one is present.
	PhoneAlwaysCombine PhonePolicy = "always-combine"
)

// NotSpecified is the display value for optional fields the requester left out.
const NotSpecified = "Not specified"

const dateDisplayLayout = "Monday, January 2, 2006"

var durationLabels = map[string]string{
	"under4hours": "Under 4 hours",
	"above4hours": "Above 4 hours",
}

var packageLabels = map[string]string{
	"bronze":             "Bronze",
	"silver":             "Silver",
	"gold":               "Gold",
	"destinationwedding": "Destination Wedding",
	"customquote":        "Custom Quote",
}

// Normalizer reconciles the historical payload shapes into a canonical
// model.Inquiry. It is a pure function of its input: no I/O, no state beyond
// the configured phone policy.
type Normalizer struct {
	policy PhonePolicy
}

// NewNormalizer creates a Normalizer with the given phone-composition policy.
// An unrecognized policy falls back to PhonePreferFull.
func NewNormalizer(policy PhonePolicy) *Normalizer {
	if policy != PhoneAlwaysCombine {
		policy = PhonePreferFull
	}
	return &Normalizer{policy: policy}
}

// Normalize maps a raw payload to the canonical record. It never fails:
// unparseable or missing values become zero values or "Not specified".
func (n *Normalizer) Normalize(kind model.SchemaKind, payload map[string]any) model.Inquiry {
	inq := model.NewInquiry(kind)

	inq.Name = fullName(payload)
	inq.Email = strings.TrimSpace(stringField(payload, "email"))
	inq.Phone = n.phone(payload)
	inq.Category = category(payload)
	inq.Dates, inq.DatesDisplay = dates(payload)
	inq.DurationLabel = joinedLabels(payload, "duration", durationLabels, " & ")
	inq.Venue = strings.TrimSpace(firstString(payload, "venue", "location"))
	inq.Packages = packageCodes(payload)
	inq.PackageLabel = joinedLabels(payload, "preferredPackage", packageLabels, ", ")
	inq.EventTime = strings.TrimSpace(stringField(payload, "eventTime"))
	inq.DurationHours = positiveInt(payload, "durationHours", "duration")
	inq.Message = message(payload, inq)

	return inq
}

func fullName(payload map[string]any) string {
	if name := strings.TrimSpace(stringField(payload, "name")); name != "" {
		return name
	}
	first := strings.TrimSpace(stringField(payload, "firstName"))
	last := strings.TrimSpace(stringField(payload, "lastName"))
	return strings.TrimSpace(first + " " + last)
}

func (n *Normalizer) phone(payload map[string]any) string {
	phone := strings.TrimSpace(stringField(payload, "phone"))
	country := strings.TrimSpace(stringField(payload, "phoneCountry"))
	if country == "" {
		return phone
	}
	if phone == "" {
		return country
	}
	if n.policy == PhonePreferFull && hasCountryCode(phone) {
		return phone
	}
	return country + phone
}

func hasCountryCode(phone string) bool {
	return strings.HasPrefix(phone, "+") || strings.HasPrefix(phone, "00")
}

func category(payload map[string]any) string {
	if v := strings.TrimSpace(stringField(payload, "eventType")); v != "" {
		return v
	}
	if v := strings.TrimSpace(stringField(payload, "howYouFoundUs")); v != "" {
		return v
	}
	return "Quote Request"
}

// dates resolves the three historical date shapes in priority order:
// dateFrom+dateTo range, dateFrom alone, then the single eventDate field.
// An inverted range is treated as unset rather than reordered.
func dates(payload map[string]any) (*model.DateRange, string) {
	from, fromOK := parseDate(stringField(payload, "dateFrom"))
	to, toOK := parseDate(stringField(payload, "dateTo"))

	switch {
	case fromOK && toOK:
		if to.Before(from) {
			return nil, NotSpecified
		}
		return &model.DateRange{From: from, To: to}, displayRange(from, to)
	case fromOK:
		return &model.DateRange{From: from, To: from}, from.Format(dateDisplayLayout)
	}

	if event, ok := parseDate(stringField(payload, "eventDate")); ok {
		return &model.DateRange{From: event, To: event}, event.Format(dateDisplayLayout)
	}
	return nil, NotSpecified
}

func displayRange(from, to time.Time) string {
	if from.Equal(to) {
		return from.Format(dateDisplayLayout)
	}
	return from.Format(dateDisplayLayout) + " - " + to.Format(dateDisplayLayout)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// joinedLabels maps a checkbox-style array field through a label table and
// joins the results. Unrecognized codes pass through verbatim. A scalar value
// is used directly; absence reads "Not specified".
func joinedLabels(payload map[string]any, key string, labels map[string]string, sep string) string {
	switch v := payload[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			code, ok := item.(string)
			if !ok {
				continue
			}
			if label, ok := labels[canonicalCode(code)]; ok {
				out = append(out, label)
			} else {
				out = append(out, code)
			}
		}
		if len(out) == 0 {
			return NotSpecified
		}
		return strings.Join(out, sep)
	case string:
		if strings.TrimSpace(v) == "" {
			return NotSpecified
		}
		return v
	default:
		return NotSpecified
	}
}

// packageCodes collects the canonical package codes, preserving order, for
// the validator to check against the known set.
func packageCodes(payload map[string]any) []string {
	switch v := payload["preferredPackage"].(type) {
	case []any:
		codes := make([]string, 0, len(v))
		for _, item := range v {
			if code, ok := item.(string); ok && strings.TrimSpace(code) != "" {
				codes = append(codes, canonicalCode(code))
			}
		}
		return codes
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{canonicalCode(v)}
	default:
		return nil
	}
}

// canonicalCode lowercases and strips separators so that both the hyphenated
// ("destination-wedding") and concatenated ("destinationwedding") historical
// spellings resolve to the same code.
func canonicalCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || r == ' ' {
			return -1
		}
		return r
	}, code)
}

// message uses the free-text field verbatim when present, otherwise
// synthesizes a summary line so the operator notification is never empty.
func message(payload map[string]any, inq model.Inquiry) string {
	if msg := stringField(payload, "message"); strings.TrimSpace(msg) != "" {
		return msg
	}
	venue := inq.Venue
	if venue == "" {
		venue = NotSpecified
	}
	return fmt.Sprintf("Venue: %s\nDuration: %s\nPreferred Package: %s", venue, inq.DurationLabel, inq.PackageLabel)
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func firstString(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := stringField(payload, key); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// positiveInt reads a numeric field that arrives as a JSON number or a digit
// string. Non-numeric values (the quote form reuses "duration" for checkbox
// codes) yield zero.
func positiveInt(payload map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := payload[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}
