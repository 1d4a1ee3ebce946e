// Package mailer renders inquiry notifications into ready-to-send messages.
// Rendering is pure: the dispatch coordinator decides what gets sent where.
package mailer

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/mianvisuals/studio-api/internal/domain/model"
)

// operatorTmpl carries every populated field of the inquiry into the studio
// inbox. All interpolations go through html/template, so user-supplied text
// is entity-escaped before it reaches a markup context.
var operatorTmpl = template.Must(template.New("operator").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #C9A961; border-bottom: 2px solid #C9A961; padding-bottom: 10px;">{{.Heading}}</h2>
  <div style="margin-top: 20px;">
    <h3 style="color: #2C2C2C;">Contact Information</h3>
    <p><strong>Name:</strong> {{.Inquiry.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Inquiry.Email}}">{{.Inquiry.Email}}</a></p>
    <p><strong>Phone:</strong> <a href="tel:{{.Inquiry.Phone}}">{{.Inquiry.Phone}}</a></p>
  </div>
  <div style="margin-top: 25px;">
    <h3 style="color: #2C2C2C;">Event Details</h3>
    <p><strong>Event Type:</strong> {{.Inquiry.Category}}</p>
    <p><strong>Dates:</strong> {{.Inquiry.DatesDisplay}}</p>
    {{if .Inquiry.Venue}}<p><strong>Venue:</strong> {{.Inquiry.Venue}}</p>{{end}}
    <p><strong>Duration:</strong> {{.Duration}}</p>
    <p><strong>Preferred Package:</strong> <span style="color: #C9A961; font-weight: bold;">{{.Inquiry.PackageLabel}}</span></p>
  </div>
  <div style="margin-top: 25px; padding: 15px; background-color: #F5F5F5; border-left: 4px solid #C9A961;">
    <strong>Message:</strong>
    <p style="margin-top: 10px; white-space: pre-wrap;">{{.Inquiry.Message}}</p>
  </div>
  {{if .EventID}}<div style="margin-top: 20px; color: #2C2C2C; font-size: 12px;">
    <p>This booking has been added to the studio calendar.</p>
    <p>Calendar Event ID: {{.EventID}}</p>
  </div>{{end}}
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E8E8E8; color: #2C2C2C; font-size: 12px;">
    <p>This email was sent from the {{.StudioName}} {{.FormName}} form.</p>
  </div>
</div>`))

// requesterTmpl is the fixed acknowledgment template. It is parameterized by
// name, category, dates, and the package label only; internal fields never
// appear here.
var requesterTmpl = template.Must(template.New("requester").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #C9A961;">Thank you for your {{.FormName}}!</h2>
  <p>Hi {{.Inquiry.Name}},</p>
  <p>We've received your {{.FormName}} and will review it carefully. Our team
  will get back to you within 24-48 hours.</p>
  <div style="margin-top: 30px; padding: 20px; background-color: #F5F5F5; border-left: 4px solid #C9A961;">
    <p style="margin: 0;"><strong>Your Request Summary:</strong></p>
    <ul style="margin-top: 10px; padding-left: 20px;">
      <li>Event Type: {{.Inquiry.Category}}</li>
      <li>Dates: {{.Inquiry.DatesDisplay}}</li>
      <li>Package: {{.Inquiry.PackageLabel}}</li>
    </ul>
  </div>
  <p style="margin-top: 30px;">If you have any questions in the meantime, feel free to reach out to us.</p>
  <p>Best regards,<br>{{.StudioName}} Team</p>
</div>`))

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags derives a plain-text fallback from an HTML body.
func StripTags(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}

// Formatter renders operator and requester notifications for one studio.
type Formatter struct {
	studioName string
}

// NewFormatter creates a Formatter branded with the studio's display name.
func NewFormatter(studioName string) *Formatter {
	return &Formatter{studioName: studioName}
}

type templateData struct {
	Inquiry    model.Inquiry
	StudioName string
	FormName   string
	Heading    string
	Duration   string
	EventID    string
}

// Operator renders the studio-inbox notification. eventID is the calendar
// event created for a booking, empty otherwise. The recipient is left for the
// coordinator to fill from configuration; Reply-To points at the requester.
func (f *Formatter) Operator(v model.ValidatedInquiry, eventID string) model.NotificationMessage {
	data := templateData{
		Inquiry:    v.Inquiry,
		StudioName: f.studioName,
		FormName:   formName(v.Kind),
		Heading:    heading(v.Kind),
		Duration:   durationDisplay(v.Inquiry),
		EventID:    eventID,
	}

	var html strings.Builder
	// The template is static and the data is a plain struct; Execute cannot fail.
	_ = operatorTmpl.Execute(&html, data)

	return model.NotificationMessage{
		Audience: model.AudienceOperator,
		Subject:  operatorSubject(v.Inquiry),
		BodyHTML: html.String(),
		BodyText: operatorText(data),
		ReplyTo:  v.Email,
	}
}

// Requester renders the acknowledgment sent back to the client.
func (f *Formatter) Requester(v model.ValidatedInquiry) model.NotificationMessage {
	data := templateData{
		Inquiry:    v.Inquiry,
		StudioName: f.studioName,
		FormName:   formName(v.Kind),
	}

	var html strings.Builder
	_ = requesterTmpl.Execute(&html, data)

	return model.NotificationMessage{
		Audience:  model.AudienceRequester,
		Recipient: v.Email,
		Subject:   fmt.Sprintf("Thank you for your %s - %s", data.FormName, f.studioName),
		BodyHTML:  html.String(),
		BodyText:  requesterText(data),
	}
}

func operatorSubject(inq model.Inquiry) string {
	switch inq.Kind {
	case model.SchemaQuote:
		return fmt.Sprintf("Quote Request: %s Package - %s", inq.PackageLabel, inq.Name)
	case model.SchemaBooking:
		return fmt.Sprintf("New Booking: %s - %s", inq.Category, inq.Name)
	default:
		return fmt.Sprintf("New Inquiry: %s - %s", inq.Category, inq.Name)
	}
}

func operatorText(data templateData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", data.Heading)
	fmt.Fprintf(&b, "Contact Information:\nName: %s\nEmail: %s\nPhone: %s\n\n", data.Inquiry.Name, data.Inquiry.Email, data.Inquiry.Phone)
	fmt.Fprintf(&b, "Event Details:\nEvent Type: %s\nDates: %s\n", data.Inquiry.Category, data.Inquiry.DatesDisplay)
	if data.Inquiry.Venue != "" {
		fmt.Fprintf(&b, "Venue: %s\n", data.Inquiry.Venue)
	}
	fmt.Fprintf(&b, "Duration: %s\nPreferred Package: %s\n\n", data.Duration, data.Inquiry.PackageLabel)
	fmt.Fprintf(&b, "Message:\n%s\n", data.Inquiry.Message)
	if data.EventID != "" {
		fmt.Fprintf(&b, "\nCalendar Event ID: %s\n", data.EventID)
	}
	fmt.Fprintf(&b, "\n---\nThis email was sent from the %s %s form.\n", data.StudioName, data.FormName)
	return b.String()
}

func requesterText(data templateData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your %s!\n\nHi %s,\n\n", data.FormName, data.Inquiry.Name)
	b.WriteString("We've received your request and will review it carefully. Our team will get back to you within 24-48 hours.\n\n")
	fmt.Fprintf(&b, "Your Request Summary:\n- Event Type: %s\n- Dates: %s\n- Package: %s\n\n", data.Inquiry.Category, data.Inquiry.DatesDisplay, data.Inquiry.PackageLabel)
	fmt.Fprintf(&b, "If you have any questions in the meantime, feel free to reach out to us.\n\nBest regards,\n%s Team\n", data.StudioName)
	return b.String()
}

// durationDisplay prefers the booking's hour count over the quote form's
// checkbox labels.
func durationDisplay(inq model.Inquiry) string {
	if inq.Kind == model.SchemaBooking && inq.DurationHours > 0 {
		return fmt.Sprintf("%d hour(s)", inq.DurationHours)
	}
	return inq.DurationLabel
}

func formName(kind model.SchemaKind) string {
	switch kind {
	case model.SchemaQuote:
		return "quote request"
	case model.SchemaBooking:
		return "booking request"
	default:
		return "contact"
	}
}

func heading(kind model.SchemaKind) string {
	switch kind {
	case model.SchemaQuote:
		return "New Quote Request"
	case model.SchemaBooking:
		return "New Booking Request"
	default:
		return "New Inquiry"
	}
}
