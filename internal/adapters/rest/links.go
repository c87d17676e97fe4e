package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

// Links handles GET /links?title=&artist=
func (h *Handler) Links(c *gin.Context) {
	song := domain.VibeSong{
		Title:  c.Query("title"),
		Artist: c.Query("artist"),
	}
	if strings.TrimSpace(song.Title) == "" && strings.TrimSpace(song.Artist) == "" {
		writeError(c, http.StatusBadRequest, "MISSING_QUERY", "title or artist is required")
		return
	}
	c.JSON(http.StatusOK, domain.LinksFor(song))
}

// Embed handles GET /embed?url=
func (h *Handler) Embed(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		writeError(c, http.StatusBadRequest, "MISSING_QUERY", "url is required")
		return
	}

	embed, err := domain.ResolveEmbed(raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedEmbed) {
			writeError(c, http.StatusUnprocessableEntity, "UNSUPPORTED_EMBED", "url cannot be embedded")
			return
		}
		writeError(c, http.StatusInternalServerError, "INTERNAL", "failed to resolve embed")
		return
	}
	c.JSON(http.StatusOK, embed)
}
