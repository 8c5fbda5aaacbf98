package booking

import "time"

type CreateBookingRequest struct {
	HotelID      int64  `json:"hotelId" validate:"required,gt=0"`
	RoomID       int64  `json:"roomId" validate:"required,gt=0"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	Guests       int    `json:"guests" validate:"required,gte=1"`
	Note         string `json:"note" validate:"max=1000"`
}

type PaymentRequest struct {
	BookingID     int64  `json:"bookingId" validate:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type CancelRequest struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"max=500"`
}

type PaymentResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CancellationResult struct {
	PenaltyAmount float64 `json:"penaltyAmount"`
	RefundAmount  float64 `json:"refundAmount"`
	Message       string  `json:"message"`
}

type BookingSummary struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	HotelName    string  `json:"hotelName"`
	RoomNumber   string  `json:"roomNumber"`
	RoomType     string  `json:"roomType"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	Status       string  `json:"status"`
	TotalAmount  float64 `json:"totalAmount"`
}

type RoomSnapshot struct {
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	Nights        int     `json:"nights"`
	SubTotal      float64 `json:"subTotal"`
}

type BookingInfo struct {
	ID                       int64        `json:"id"`
	Code                     string       `json:"code"`
	Status                   string       `json:"status"`
	CheckInDate              string       `json:"checkInDate"`
	CheckOutDate             string       `json:"checkOutDate"`
	Guests                   int          `json:"guests"`
	TotalAmount              float64      `json:"totalAmount"`
	Note                     string       `json:"note"`
	FreeCancellationDeadline time.Time    `json:"freeCancellationDeadline"`
	PenaltyAmount            *float64     `json:"penaltyAmount,omitempty"`
	HotelName                string       `json:"hotelName"`
	HotelAddress             string       `json:"hotelAddress"`
	RoomInfo                 RoomSnapshot `json:"roomInfo"`
}

type RoomInfo struct {
	ID            int64   `json:"id"`
	HotelID       int64   `json:"hotelId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	HotelName     string  `json:"hotelName"`
}
