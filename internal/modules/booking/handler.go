package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/qr"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"
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

// RegisterRoutes mounts the customer booking endpoints. auth must resolve the
// caller identity before the handlers run.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth ...gin.HandlerFunc) {
	bookings := rg.Group("/bookings", auth...)
	bookings.Use(middleware.CustomerOnly())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetMyBookings)
		bookings.POST("/payment", h.ProcessPayment)
		bookings.POST("/cancel", h.CancelBooking)
		bookings.GET("/:id", h.GetBookingInfo)
		bookings.GET("/:id/voucher.png", h.Voucher)
	}

	rg.GET("/rooms/:id", h.GetRoomInfo)
}

// bind decodes the JSON body and runs struct validation.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", fields)
		return false
	}
	return true
}

func identity(c *gin.Context) domain.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bind(c, &req) {
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), identity(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{
		"bookingId": b.ID,
		"code":      b.Code,
		"message":   "Booking created",
	})
}

func (h *Handler) ProcessPayment(c *gin.Context) {
	var req PaymentRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.ProcessPayment(c.Request.Context(), identity(c), req.BookingID, req.PaymentMethod)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"status":  res.Status,
		"message": res.Message,
	})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	var req CancelRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.CancelBooking(c.Request.Context(), identity(c), req.BookingID, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"message":       res.Message,
		"penaltyAmount": res.PenaltyAmount,
		"refundAmount":  res.RefundAmount,
	})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	list, err := h.service.GetMyBookings(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetBookingInfo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.service.GetBookingInfo(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) GetRoomInfo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.service.GetRoomInfo(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) Voucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.Voucher(c.Request.Context(), identity(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	payload := qr.VoucherPayload(b.Code, domain.FormatDate(b.CheckInDate), domain.FormatDate(b.CheckOutDate))
	png, err := qr.VoucherPNG(payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// fail maps service errors onto the response envelope.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", strings.TrimPrefix(err.Error(), ErrValidation.Error()+": "))
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only customers can manage bookings")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrRoomUnavailable):
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is not available for the selected dates")
	case errors.Is(err, ErrRoomBusy):
		response.Error(c, http.StatusConflict, "ROOM_BUSY", "Room is being booked by someone else, please retry")
	case errors.Is(err, ErrAlreadyCancelled):
		response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Booking was already cancelled")
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Completed bookings cannot be cancelled")
	case errors.Is(err, ErrInvalidStateTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE_TRANSITION", err.Error())
	case errors.Is(err, ErrNotVoucherEligible):
		response.Error(c, http.StatusConflict, "INVALID_STATE_TRANSITION", err.Error())
	default:
		_ = c.Error(err)
		h.log.Error("booking request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
