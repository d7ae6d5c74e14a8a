package domain

import "time"

type UserRole string

const (
	UserRoleStaff  UserRole = "STAFF"
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleRenter UserRole = "RENTER"
)

type User struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FullName   string   `json:"fullName"`
	Phone      string   `json:"phone,omitempty"`
	AvatarURL  string   `json:"avatarUrl,omitempty"`
	Role       UserRole `json:"role"`
	BranchID   string   `json:"branchId,omitempty"`
	IsVerified bool     `json:"isVerified"`
}

type AuthTokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

type LoginResult struct {
	AuthTokens
	User User `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type ResendOtpRequest struct {
	Email string `json:"email"`
}

type UpdateProfileRequest struct {
	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
