package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type Account struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:200;uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" gorm:"size:16"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty" gorm:"size:32"`
	IsLocked     bool      `json:"is_locked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Identity is the authenticated caller, resolved once per request.
type Identity struct {
	UserID int64
	Role   UserRole
}

func (i Identity) IsCustomer() bool { return i.UserID > 0 && i.Role == RoleCustomer }
