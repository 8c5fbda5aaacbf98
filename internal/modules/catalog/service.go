package catalog

import (
	"context"
	"errors"
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

var ErrHotelNotFound = errors.New("hotel not found")

type Repository interface {
	ListActiveHotels(ctx context.Context) ([]repository.HotelSummaryRow, error)
	GetActiveHotel(ctx context.Context, hotelID int64) (*domain.Hotel, error)
	ActiveRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListHotels(ctx context.Context) ([]HotelSummary, error) {
	rows, err := s.repo.ListActiveHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	out := make([]HotelSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSummary(r.Hotel, r.MinPrice))
	}
	return out, nil
}

func (s *Service) GetHotel(ctx context.Context, hotelID int64) (*HotelDetails, error) {
	h, err := s.repo.GetActiveHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("get hotel: %w", err)
	}

	rooms, err := s.HotelRooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	var minPrice *float64
	for i := range rooms {
		if minPrice == nil || rooms[i].PricePerNight < *minPrice {
			minPrice = &rooms[i].PricePerNight
		}
	}

	return &HotelDetails{
		HotelSummary: toSummary(*h, minPrice),
		Rooms:        rooms,
	}, nil
}

func (s *Service) HotelRooms(ctx context.Context, hotelID int64) ([]RoomView, error) {
	rooms, err := s.repo.ActiveRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomView(r))
	}
	return out, nil
}
