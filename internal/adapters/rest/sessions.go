package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ewilliams-labs/vibefinder/internal/core/services"
)

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	State     stateView `json:"state"`
}

type submitVibeRequest struct {
	Prompt string `json:"prompt"`
}

type submitVibeResponse struct {
	Accepted bool      `json:"accepted"`
	State    stateView `json:"state"`
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, sessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		State:     newStateView(s.Engine.State()),
	})
}

// GetSession handles GET /sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		State:     newStateView(s.Engine.State()),
	})
}

// DeleteSession handles DELETE /sessions/:id and cancels any in-flight request.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			writeError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "session not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "INTERNAL", "failed to close session")
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitVibe handles POST /sessions/:id/vibe. A blank prompt or a request
// already in flight is not an error: the state is returned unchanged with
// accepted=false.
func (h *Handler) SubmitVibe(c *gin.Context) {
	if c.ContentType() != gin.MIMEJSON {
		writeError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return
	}

	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req submitVibeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	accepted := s.Engine.Submit(req.Prompt)
	status := http.StatusOK
	if accepted {
		status = http.StatusAccepted
	}
	c.JSON(status, submitVibeResponse{
		Accepted: accepted,
		State:    newStateView(s.Engine.State()),
	})
}

// Events handles GET /sessions/:id/events. It streams the current state and
// then one "state" event per transition until the client disconnects or the
// session is closed.
func (h *Handler) Events(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	states, unsubscribe := s.Engine.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case st, ok := <-states:
			if !ok {
				return
			}
			c.SSEvent("state", newStateView(st))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Handler) lookup(c *gin.Context) (*services.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "session not found")
		return nil, false
	}
	return s, true
}
