package v1

import (
	"errors"
	"net/http"
	"strings"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// contactPayload is the lenient wire form of a submission. The token is
// bound as any so a non-string value degrades to a missing token and gets
// the token check's message instead of failing the whole bind.
type contactPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	TurnstileToken any    `json:"turnstileToken"`
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate a contact form submission, verify the Turnstile token, and deliver it by email. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.SuccessResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      429      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var payload contactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		// Missing body or non-string fields read the same as absent ones
		c.Error(apperror.BadRequest("Name, email, and message are required"))
		return
	}

	token, _ := payload.TurnstileToken.(string)
	req := domain.ContactRequest{
		Name:           payload.Name,
		Email:          payload.Email,
		Message:        payload.Message,
		TurnstileToken: token,
	}
	req.RemoteIP = clientIP(c)

	result, err := h.contactUC.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		c.Error(mapContactError(err))
		return
	}

	response.Success(c, http.StatusOK, result.ID)
}

// mapContactError translates the usecase error taxonomy into HTTP responses.
func mapContactError(err error) *apperror.AppError {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return apperror.BadRequest(validationErr.Message)
	}

	var verificationErr *domain.VerificationError
	if errors.As(err, &verificationErr) {
		return apperror.VerificationFailed("Verification failed. Please try again.", verificationErr.Codes)
	}

	if errors.Is(err, domain.ErrEmailNotConfigured) {
		return apperror.Internal("Email service is not configured", err)
	}

	var deliveryErr *domain.DeliveryError
	if errors.As(err, &deliveryErr) {
		return apperror.Internal("Failed to send message. Please try again.", err)
	}

	return apperror.Internal("An unexpected error occurred", err)
}

// clientIP prefers the trusted-proxy connecting-IP header and falls back to
// the first forwarded-for entry.
func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return ""
}
