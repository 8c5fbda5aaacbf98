package loyalty

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth ...gin.HandlerFunc) {
	g := rg.Group("/loyalty", auth...)
	g.GET("/me", h.Me)
}

func (h *Handler) Me(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	total, err := h.service.Balance(c.Request.Context(), id.UserID)
	if err != nil {
		h.service.log.Error("loyalty balance failed", zap.Int64("user_id", id.UserID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load loyalty balance")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalPoints": total})
}
