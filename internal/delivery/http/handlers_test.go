package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/mianvisuals/studio-api/internal/events"
	"github.com/mianvisuals/studio-api/internal/forms"
	"github.com/mianvisuals/studio-api/internal/instagram"
	"github.com/mianvisuals/studio-api/internal/mailer"
	"github.com/mianvisuals/studio-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	sent []model.NotificationMessage
	err  error
}

func (s *stubNotifier) Send(_ context.Context, msg *model.NotificationMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, *msg)
	return nil
}

type stubScheduler struct {
	eventID string
	err     error
	calls   int
}

func (s *stubScheduler) Schedule(_ context.Context, _ model.BookingEvent) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.eventID, nil
}

type testEnv struct {
	router    *gin.Engine
	notifier  *stubNotifier
	scheduler *stubScheduler
}

func newTestEnv(t *testing.T, mutate func(cfg *config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Studio.Name = "Mian Visuals"
	cfg.Mail.Recipient = "studio@example.com"
	cfg.Dispatch.Timeout = time.Second
	if mutate != nil {
		mutate(cfg)
	}

	notifier := &stubNotifier{}
	sched := &stubScheduler{eventID: "evt-12345"}
	log := zerolog.Nop()

	dispatch := service.NewDispatchService(
		cfg,
		forms.NewNormalizer(forms.PhonePreferFull),
		forms.NewValidator(),
		mailer.NewFormatter(cfg.Studio.Name),
		notifier,
		sched,
		events.NewBus(),
		&log,
	)

	handlers := NewHandlers(dispatch, instagram.NewClient(cfg, &log), &log)
	router := gin.New()
	handlers.RegisterRoutes(router)

	return &testEnv{router: router, notifier: notifier, scheduler: sched}
}

func (e *testEnv) post(t *testing.T, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestQuoteSubmissionSuccess(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.post(t, "/api/v1/quote", map[string]any{
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane@example.com",
		"phone":            "07700900123",
		"venue":            "The Grand Hall",
		"dateFrom":         "2026-06-01",
		"dateTo":           "2026-06-01",
		"duration":         []any{"under4hours"},
		"preferredPackage": []any{"gold"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Quote request submitted successfully", resp.Message)

	require.Len(t, env.notifier.sent, 1)
	assert.Contains(t, env.notifier.sent[0].Subject, "Jane Doe")
	assert.Contains(t, env.notifier.sent[0].BodyText, "Preferred Package: Gold")
}

func TestContactSubmissionMissingEmail(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.post(t, "/api/v1/contact", map[string]any{
		"name":      "A",
		"phone":     "123",
		"eventType": "wedding",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)

	fields := make([]string, len(resp.Details))
	for i, d := range resp.Details {
		fields[i] = d.Field
	}
	assert.Equal(t, []string{"name", "email"}, fields)
	assert.Empty(t, env.notifier.sent)
}

func TestBookingSubmissionReturnsEventID(t *testing.T) {
	env := newTestEnv(t, nil)
	future := time.Now().Add(72 * time.Hour).Format("2006-01-02")

	w := env.post(t, "/api/v1/booking", map[string]any{
		"name":          "Jane Doe",
		"email":         "jane@example.com",
		"phone":         "07700900123",
		"eventType":     "wedding",
		"eventDate":     future,
		"eventTime":     "14:00",
		"durationHours": 4,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "evt-12345", resp.EventID)
	assert.Equal(t, 1, env.scheduler.calls)
}

func TestBookingSubmissionPastDate(t *testing.T) {
	env := newTestEnv(t, nil)
	past := time.Now().Add(-24 * time.Hour).Format("2006-01-02")

	w := env.post(t, "/api/v1/booking", map[string]any{
		"name":          "Jane Doe",
		"email":         "jane@example.com",
		"phone":         "07700900123",
		"eventType":     "wedding",
		"eventDate":     past,
		"eventTime":     "14:00",
		"durationHours": 4,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Event date must be in the future")

	// No sink was touched.
	assert.Equal(t, 0, env.scheduler.calls)
	assert.Empty(t, env.notifier.sent)
}

func TestSubmissionMissingRecipientConfiguration(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Mail.Recipient = ""
	})

	w := env.post(t, "/api/v1/contact", map[string]any{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "07700900123",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
	assert.Empty(t, env.notifier.sent)
}

func TestSubmissionSinkFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.notifier.err = errors.New("smtp: connection refused")

	w := env.post(t, "/api/v1/contact", map[string]any{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "07700900123",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestSubmissionMalformedBody(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInstagramFeedWithoutCredentials(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/instagram", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp InstagramFeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Posts)
	assert.Zero(t, resp.Count)
}
