package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/mianvisuals/studio-api/internal/forms"
	"github.com/mianvisuals/studio-api/internal/instagram"
	"github.com/mianvisuals/studio-api/internal/service"
	"github.com/rs/zerolog"
)

type Handlers struct {
	dispatch *service.DispatchService
	feed     *instagram.Client
	logger   zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(dispatch *service.DispatchService, feed *instagram.Client, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		dispatch: dispatch,
		feed:     feed,
		logger:   logger.With().Str("layer", "http_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the inquiry API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/contact", h.SubmitContact)
		api.POST("/quote", h.SubmitQuote)
		api.POST("/booking", h.SubmitBooking)
		api.GET("/instagram", h.InstagramFeed)
	}
}

// SubmitContact handles contact-form submissions.
func (h *Handlers) SubmitContact(c *gin.Context) {
	h.submit(c, model.SchemaContact, "Email sent successfully")
}

// SubmitQuote handles quote-request submissions.
func (h *Handlers) SubmitQuote(c *gin.Context) {
	h.submit(c, model.SchemaQuote, "Quote request submitted successfully")
}

// SubmitBooking handles booking-request submissions.
func (h *Handlers) SubmitBooking(c *gin.Context) {
	h.submit(c, model.SchemaBooking, "Booking request submitted successfully")
}

// submit runs the shared dispatch pipeline and maps its outcome taxonomy to
// HTTP statuses. The body binds as a free-form map: reconciling the legacy
// field shapes is the normalizer's job, not the binding layer's.
func (h *Handlers) submit(c *gin.Context, kind model.SchemaKind, successMessage string) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn().Err(err).Str("kind", string(kind)).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	receipt, err := h.dispatch.Dispatch(c.Request.Context(), kind, payload)
	if err != nil {
		var fieldErrs forms.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: []model.FieldError(fieldErrs),
			})
		case errors.Is(err, service.ErrRecipientNotConfigured):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		default:
			h.logger.Error().Err(err).Str("kind", string(kind)).Msg("failed to dispatch submission")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit request. Please try again later."})
		}
		return
	}

	resp := SubmissionResponse{Message: successMessage, EventID: receipt.EventID}
	if receipt.AckFailed {
		resp.Warning = "confirmation email could not be delivered"
	}
	c.JSON(http.StatusOK, resp)
}

// InstagramFeed proxies the studio's recent posts. Upstream failures surface
// as an empty feed, never as an error status.
func (h *Handlers) InstagramFeed(c *gin.Context) {
	posts := h.feed.RecentPosts(c.Request.Context())
	if posts == nil {
		posts = []instagram.Post{}
	}
	c.JSON(http.StatusOK, InstagramFeedResponse{Posts: posts, Count: len(posts)})
}
