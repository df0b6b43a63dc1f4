package domain

import (
	"time"
)

// User represents a platform user. The pubkey is the primary identity and is
// established on first verified login.
type User struct {
	Pubkey      string     `json:"pubkey"`
	Username    string     `json:"username"`
	Alias       string     `json:"alias,omitempty"`
	Description string     `json:"description,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// UserUpdate represents profile update data
type UserUpdate struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Alias       *string `json:"alias,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=500"`
}

// AuthChallenge is a server-issued nonce the client signs to prove key
// ownership.
type AuthChallenge struct {
	Challenge string    `json:"challenge"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthVerify represents a signed challenge submission
type AuthVerify struct {
	Pubkey    string `json:"pubkey" validate:"required,hexadecimal,len=64"`
	Challenge string `json:"challenge" validate:"required"`
	Signature string `json:"signature" validate:"required,hexadecimal"`
}

// TokenPair represents JWT token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
