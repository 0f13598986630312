package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faqbot/internal/domain/faq"
	apperrors "github.com/yanqian/faqbot/pkg/errors"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// ChatRequest is the body accepted by the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by the chat endpoint.
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat answers {"message": ...} with {"response": ...}. A missing message is
// answered like an empty one.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), faq.Request{Question: req.Message})
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "faq_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: resp.Answer})
}

// AnswerFAQ returns the best matching answer with the matched question and score.
func (h *Handler) AnswerFAQ(c *gin.Context) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "faq_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListEntries returns the knowledge base in match order.
func (h *Handler) ListEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.faqSvc.Entries(c.Request.Context())})
}

// Health reports readiness. The engine is built before the server starts,
// so a running server is always ready.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": len(h.faqSvc.Entries(c.Request.Context()))})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
