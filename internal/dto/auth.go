package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// Optional client-supplied connection metadata, mirrored into the
	// connection-history entry for this attempt.
	Device   string `json:"device" binding:"omitempty,max=100"`
	Location string `json:"location" binding:"omitempty,max=255"`
}

type AuthResponse struct {
	Message      string       `json:"message"`
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RefreshResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
