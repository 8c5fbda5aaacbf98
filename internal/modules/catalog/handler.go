package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", h.ListHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/rooms", h.GetHotelRooms)
	}
}

func (h *Handler) ListHotels(c *gin.Context) {
	list, err := h.service.ListHotels(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"hotels": list})
}

func (h *Handler) GetHotel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel id")
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
			return
		}
		h.internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) GetHotelRooms(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel id")
		return
	}

	rooms, err := h.service.HotelRooms(c.Request.Context(), id)
	if err != nil {
		h.internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) internal(c *gin.Context, err error) {
	h.log.Error("catalog request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
