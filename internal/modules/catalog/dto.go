package catalog

import "hotelbooking/internal/domain"

type HotelSummary struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	StarRating  int      `json:"starRating"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	MinPrice    *float64 `json:"minPrice"`
}

type RoomView struct {
	ID            int64   `json:"id"`
	HotelID       int64   `json:"hotelId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"pricePerNight"`
}

type HotelDetails struct {
	HotelSummary
	Rooms []RoomView `json:"rooms"`
}

func toRoomView(r domain.Room) RoomView {
	return RoomView{
		ID:            r.ID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.Code,
		Name:          r.Name,
		Description:   r.Description,
		Capacity:      r.Capacity,
		PricePerNight: r.PricePerNight,
	}
}

func toSummary(h domain.Hotel, minPrice *float64) HotelSummary {
	return HotelSummary{
		ID:          h.ID,
		Name:        h.Name,
		Address:     h.Address,
		City:        h.City,
		Country:     h.Country,
		StarRating:  h.StarRating,
		Description: h.Description,
		ImageURL:    h.ImageURL,
		MinPrice:    minPrice,
	}
}
