package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gke-notify/internal/message"
	"gke-notify/internal/shared/server/respond"
)

// Handler wires the Pub/Sub push endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the push endpoint to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/", h.Receive)
}

// Receive decodes a push delivery and runs it through the pipeline. Only an
// envelope-level decode error (corrupt body, known-type schema violation)
// rejects the request; unrecognized or absent payloads are acknowledged with
// 200 and surface as rendered placeholder text instead.
func (h *Handler) Receive(c *gin.Context) {
	var push message.PushRequest
	if err := c.ShouldBindJSON(&push); err != nil {
		respond.Error(c, http.StatusBadRequest, "decode_error", err.Error(), nil)
		return
	}

	h.Svc.Process(c.Request.Context(), push)
	c.Status(http.StatusOK)
}
