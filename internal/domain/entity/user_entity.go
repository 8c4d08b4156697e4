package entity

import (
	"time"
)

// AnnualRevenue is the self-declared yearly revenue bucket of a business.
type AnnualRevenue string

const (
	RevenueLessThan50k  AnnualRevenue = "less_than_50k"
	Revenue50kTo100k    AnnualRevenue = "50k_100k"
	Revenue100kTo200k   AnnualRevenue = "100k_200k"
	Revenue200kTo500k   AnnualRevenue = "200k_500k"
	RevenueMoreThan500k AnnualRevenue = "more_than_500k"
)

// BusinessType distinguishes wholesale from retail buyers.
type BusinessType string

const (
	BusinessWholesale BusinessType = "wholesale"
	BusinessRetail    BusinessType = "retail"
)

// UserStatus is the account status; only active accounts may log in.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusDisabled UserStatus = "disabled"
)

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash, never the plain password.
//
// ChatID is nil while no chat is bound to the account (never logged in, or logged out).
type User struct {
	ID              string
	ChatID          *int64
	FullName        string
	Phone           string
	Email           string
	BusinessName    string
	BusinessAddress string
	Governorate     string
	AnnualRevenue   AnnualRevenue
	BusinessType    BusinessType
	PasswordHash    string
	Status          UserStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u != nil && u.Status == StatusActive
}
