package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats handles GET /stats
func (h *Handler) Stats(c *gin.Context) {
	if h.ledger == nil {
		writeError(c, http.StatusNotImplemented, "NO_LEDGER", "request log not configured")
		return
	}

	summary, err := h.ledger.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("load request summary", "err", err)
		writeError(c, http.StatusInternalServerError, "INTERNAL", "failed to load stats")
		return
	}
	c.JSON(http.StatusOK, summary)
}
