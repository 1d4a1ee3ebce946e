package forms

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mianvisuals/studio-api/internal/domain/model"
)

// A rule inspects one aspect of an inquiry and returns a problem description,
// or "" when the inquiry satisfies it. Rules never perform I/O.
type rule func(v *Validator, inq model.Inquiry) string

// fieldRules binds a field name to the ordered rules that govern it.
type fieldRules struct {
	field string
	rules []rule
}

// schema is the per-kind required-field configuration. The three form
// endpoints differ only in these descriptors, never in validation code.
type schema struct {
	kind   model.SchemaKind
	fields []fieldRules
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

var schemas = map[model.SchemaKind]schema{
	model.SchemaContact: {
		kind: model.SchemaContact,
		fields: []fieldRules{
			{"name", []rule{minLen(func(i model.Inquiry) string { return i.Name }, 2, "Name must be at least 2 characters")}},
			{"email", []rule{email()}},
			{"phone", []rule{nonEmpty(func(i model.Inquiry) string { return i.Phone }, "Phone number is required")}},
			// Category and message need no rules here: normalization
			// backfills both, so they are never absent by this point.
		},
	},
	model.SchemaQuote: {
		kind: model.SchemaQuote,
		fields: []fieldRules{
			{"name", []rule{minLen(func(i model.Inquiry) string { return i.Name }, 2, "Name must be at least 2 characters")}},
			{"email", []rule{email()}},
			{"phone", []rule{minLen(func(i model.Inquiry) string { return i.Phone }, 10, "Phone number must be at least 10 characters")}},
			{"duration", []rule{specified(func(i model.Inquiry) string { return i.DurationLabel }, "Duration is required")}},
			{"datesRequired", []rule{datesPresent("Dates required is required")}},
			{"venue", []rule{minLen(func(i model.Inquiry) string { return i.Venue }, 2, "Venue must be at least 2 characters")}},
			{"preferredPackage", []rule{packagesKnown()}},
		},
	},
	model.SchemaBooking: {
		kind: model.SchemaBooking,
		fields: []fieldRules{
			{"name", []rule{minLen(func(i model.Inquiry) string { return i.Name }, 2, "Name must be at least 2 characters")}},
			{"email", []rule{email()}},
			{"phone", []rule{minLen(func(i model.Inquiry) string { return i.Phone }, 10, "Phone number must be at least 10 characters")}},
			{"eventType", []rule{nonEmpty(func(i model.Inquiry) string { return i.Category }, "Event type is required")}},
			{"eventDate", []rule{datesPresent("Invalid date format"), futureEvent()}},
			{"eventTime", []rule{nonEmpty(func(i model.Inquiry) string { return i.EventTime }, "Event time is required")}},
			{"durationHours", []rule{minHours(1, "Duration must be at least 1 hour")}},
		},
	},
}

func nonEmpty(get func(model.Inquiry) string, msg string) rule {
	return func(_ *Validator, inq model.Inquiry) string {
		if strings.TrimSpace(get(inq)) == "" {
			return msg
		}
		return ""
	}
}

func minLen(get func(model.Inquiry) string, n int, msg string) rule {
	return func(_ *Validator, inq model.Inquiry) string {
		if len(strings.TrimSpace(get(inq))) < n {
			return msg
		}
		return ""
	}
}

// specified rejects both the empty value and the "Not specified" placeholder
// the normalizer substitutes for absent optional input.
func specified(get func(model.Inquiry) string, msg string) rule {
	return func(_ *Validator, inq model.Inquiry) string {
		v := strings.TrimSpace(get(inq))
		if v == "" || v == NotSpecified {
			return msg
		}
		return ""
	}
}

func email() rule {
	return func(_ *Validator, inq model.Inquiry) string {
		if !emailPattern.MatchString(strings.TrimSpace(inq.Email)) {
			return "Invalid email address"
		}
		return ""
	}
}

func datesPresent(msg string) rule {
	return func(_ *Validator, inq model.Inquiry) string {
		if inq.Dates == nil {
			return msg
		}
		return ""
	}
}

// futureEvent requires the resolved event start to lie strictly ahead of
// validation time. It is silent when no date parsed at all; datesPresent
// reports that case.
func futureEvent() rule {
	return func(v *Validator, inq model.Inquiry) string {
		start, _, ok := inq.EventWindow()
		if !ok {
			return ""
		}
		if !start.After(v.now()) {
			return "Event date must be in the future"
		}
		return ""
	}
}

func packagesKnown() rule {
	return func(_ *Validator, inq model.Inquiry) string {
		if len(inq.Packages) == 0 {
			return "Preferred package is required"
		}
		for _, code := range inq.Packages {
			if _, ok := packageLabels[code]; !ok {
				return fmt.Sprintf("Unknown package: %s", code)
			}
		}
		return ""
	}
}

func minHours(n int, msg string) rule {
	return func(_ *Validator, inq model.Inquiry) string {
		if inq.DurationHours < n {
			return msg
		}
		return ""
	}
}
