package dto

// LoginRequest carries login credentials. Role narrows the lookup when set.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin student"`
}

// RefreshRequest carries the opaque refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries the issued session tokens.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	Role         string `json:"role"`
	StudentID    *int64 `json:"studentId,omitempty"`
}
