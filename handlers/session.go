package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"mentorhub/models"
	"mentorhub/services/session"
	"mentorhub/utils"
)

const sessionCacheTTL = 5 * time.Minute

// SessionHandler exposes the booking and lifecycle endpoints.
type SessionHandler struct {
	Service session.SessionService
	Cache   *redis.Client
	Logger  *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc session.SessionService, cache *redis.Client, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Service: svc, Cache: cache, Logger: logger}
}

// BookSession books a session, idempotently. Responds 201 when a new
// session was created and 200 when the identical request already had one.
func (h *SessionHandler) BookSession(c *gin.Context) {
	var input struct {
		ExpertID  string    `json:"expert_id" binding:"required"`
		StudentID string    `json:"student_id" binding:"required"`
		StartAt   time.Time `json:"start_at" binding:"required"`
		EndAt     time.Time `json:"end_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, created, err := h.Service.BookSession(c.Request.Context(), input.ExpertID, input.StudentID, input.StartAt, input.EndAt)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"session": models.NewSessionResponse(sess),
		"created": created,
	})
}

// JoinSession moves a booked session to JOINED.
func (h *SessionHandler) JoinSession(c *gin.Context) {
	sessionID, ok := h.bindSessionID(c)
	if !ok {
		return
	}

	sess, err := h.Service.JoinSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateCache(c, sess.ID)
	c.JSON(http.StatusOK, gin.H{"session": models.NewSessionResponse(sess)})
}

// EndSession completes a session and triggers summary generation.
func (h *SessionHandler) EndSession(c *gin.Context) {
	sessionID, ok := h.bindSessionID(c)
	if !ok {
		return
	}

	sess, err := h.Service.EndSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateCache(c, sess.ID)
	c.JSON(http.StatusOK, gin.H{"session": models.NewSessionResponse(sess)})
}

// GetSession returns a session by ID, served from the Redis cache when
// possible.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), sessionCacheKey(sessionID)).Result(); err == nil {
			var resp models.SessionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				c.JSON(http.StatusOK, gin.H{"session": resp})
				return
			}
		}
	}

	sess, err := h.Service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := models.NewSessionResponse(sess)
	if h.Cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := h.Cache.Set(c.Request.Context(), sessionCacheKey(sessionID), data, sessionCacheTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache session", zap.String("sessionID", sessionID), zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"session": resp})
}

func (h *SessionHandler) bindSessionID(c *gin.Context) (string, bool) {
	var input struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return "", false
	}
	return input.SessionID, true
}

func (h *SessionHandler) invalidateCache(c *gin.Context, sessionID string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(c.Request.Context(), sessionCacheKey(sessionID)).Err(); err != nil {
		h.Logger.Warn("failed to invalidate session cache", zap.String("sessionID", sessionID), zap.Error(err))
	}
}

func sessionCacheKey(id string) string {
	return "session:" + id
}

// respondError maps domain errors onto stable outward status codes, so a
// client can tell idempotent success from conflict from bad input.
func (h *SessionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidTimeRange), errors.Is(err, models.ErrStartInPast):
		utils.JSONError(c, http.StatusBadRequest, "invalid time range", err.Error())
	case errors.Is(err, session.ErrInvalidTransition):
		utils.JSONError(c, http.StatusBadRequest, "invalid transition", err.Error())
	case errors.Is(err, session.ErrExpertNotFound),
		errors.Is(err, session.ErrStudentNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, session.ErrBookingConflict):
		utils.JSONError(c, http.StatusConflict, "booking conflict", err.Error())
	case errors.Is(err, session.ErrStoreContention):
		utils.JSONError(c, http.StatusServiceUnavailable, "store contention", err.Error())
	default:
		h.Logger.Error("unexpected error handling session request", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal server error", "An unexpected error occurred. Please try again later.")
	}
}
