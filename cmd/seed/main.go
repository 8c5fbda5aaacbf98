package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/auth"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
)

type hotelSeed struct {
	name, address, city string
	stars               int
}

var hotels = []hotelSeed{
	{"Riverside Grand", "12 Bach Dang", "Da Nang", 5},
	{"Old Quarter Inn", "45 Hang Bac", "Hanoi", 3},
	{"Saigon Central", "88 Le Loi", "Ho Chi Minh City", 4},
	{"Lakeview Lodge", "7 Thanh Nien", "Hanoi", 4},
}

var roomTypes = []struct {
	code     string
	capacity int
	price    float64
}{
	{"STANDARD", 2, 800000},
	{"DELUXE", 3, 1200000},
	{"VIP", 4, 2500000},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{"loyalty_entries", "loyalty_accounts", "payments", "bookings", "rooms", "hotels", "accounts"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	log.Println("Creating hotels and rooms...")
	for _, h := range hotels {
		hotel := domain.Hotel{
			Name:        h.name,
			Address:     h.address,
			City:        h.city,
			Country:     "Vietnam",
			StarRating:  h.stars,
			Description: "Seeded hotel for local development",
			IsActive:    true,
		}
		if err := db.Create(&hotel).Error; err != nil {
			log.Fatalf("create hotel %q: %v", h.name, err)
		}

		for floor := 1; floor <= 2; floor++ {
			for i, rt := range roomTypes {
				room := domain.Room{
					HotelID:       hotel.ID,
					RoomNumber:    fmt.Sprintf("%d%02d", floor, i+1),
					Code:          rt.code,
					Name:          fmt.Sprintf("%s room", rt.code),
					Capacity:      rt.capacity,
					PricePerNight: rt.price + float64(rand.Intn(5))*50000,
					IsActive:      true,
				}
				if err := db.Create(&room).Error; err != nil {
					log.Fatalf("create room: %v", err)
				}
			}
		}
	}

	accounts := repository.NewAccountRepository(db)
	ctx := context.Background()

	seedAccount := func(email, password, name string, role domain.UserRole) *domain.Account {
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatal(err)
		}
		acc := &domain.Account{Email: email, PasswordHash: hash, FullName: name, Role: role}
		if err := accounts.Create(ctx, acc); err != nil {
			log.Fatalf("create account %s: %v", email, err)
		}
		log.Printf("Account created: %s / %s", email, password)
		return acc
	}

	seedAccount("admin@hotel.local", "admin123", "Administrator", domain.RoleAdmin)
	guest := seedAccount("guest@hotel.local", "guest123", "Demo Guest", domain.RoleCustomer)

	token, err := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(guest.ID, guest.Role)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Guest bearer token: %s", token)
	log.Println("Seed completed")
}
