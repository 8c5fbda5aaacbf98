// Package search finds hotels with at least one free room for a stay.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"
)

var ErrValidation = errors.New("validation error")

type HotelRepository interface {
	SearchHotels(ctx context.Context, location string) ([]domain.Hotel, error)
}

type StayRepository interface {
	ActiveStaysByRoom(ctx context.Context, roomIDs []int64, from time.Time) (map[int64][]domain.StayRange, error)
}

type Request struct {
	Location     string `json:"location" validate:"max=200"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
}

type HotelAvailability struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	StarRating     int     `json:"starRating"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	MinPrice       float64 `json:"minPrice"`
	AvailableRooms int     `json:"availableRooms"`
}

type Service struct {
	hotels HotelRepository
	stays  StayRepository
}

func NewService(hotels HotelRepository, stays StayRepository) *Service {
	return &Service{hotels: hotels, stays: stays}
}

func (s *Service) SearchHotels(ctx context.Context, req Request) ([]HotelAvailability, error) {
	checkIn, err := domain.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: checkInDate must be YYYY-MM-DD", ErrValidation)
	}
	checkOut, err := domain.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: checkOutDate must be YYYY-MM-DD", ErrValidation)
	}
	want := domain.StayRange{CheckIn: checkIn, CheckOut: checkOut}
	if !want.Valid() {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	}

	hotels, err := s.hotels.SearchHotels(ctx, strings.TrimSpace(req.Location))
	if err != nil {
		return nil, fmt.Errorf("search hotels: %w", err)
	}

	var roomIDs []int64
	for _, h := range hotels {
		for _, r := range h.Rooms {
			roomIDs = append(roomIDs, r.ID)
		}
	}
	stays, err := s.stays.ActiveStaysByRoom(ctx, roomIDs, checkIn)
	if err != nil {
		return nil, fmt.Errorf("load stays: %w", err)
	}

	out := make([]HotelAvailability, 0, len(hotels))
	for _, h := range hotels {
		free, active := 0, 0
		var minPrice float64
		for _, r := range h.Rooms {
			if !r.IsActive {
				continue
			}
			if active == 0 || r.PricePerNight < minPrice {
				minPrice = r.PricePerNight
			}
			active++
			if !want.ConflictsWith(stays[r.ID]) {
				free++
			}
		}
		if free == 0 {
			continue
		}
		out = append(out, HotelAvailability{
			ID:             h.ID,
			Name:           h.Name,
			Address:        h.Address,
			City:           h.City,
			Country:        h.Country,
			StarRating:     h.StarRating,
			Description:    h.Description,
			ImageURL:       h.ImageURL,
			MinPrice:       minPrice,
			AvailableRooms: free,
		})
	}
	return out, nil
}
