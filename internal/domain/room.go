package domain

import "time"

type Hotel struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200"`
	Address     string    `json:"address"`
	City        string    `json:"city" gorm:"size:100;index"`
	Country     string    `json:"country" gorm:"size:100"`
	StarRating  int       `json:"star_rating"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}

func (Hotel) TableName() string { return "hotels" }

type Room struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	HotelID       int64     `json:"hotel_id" gorm:"index"`
	RoomNumber    string    `json:"room_number" gorm:"size:20"`
	Code          string    `json:"code" gorm:"size:20"` // room type, e.g. VIP or STANDARD
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	Capacity      int       `json:"capacity"`
	PricePerNight float64   `json:"price_per_night"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }
