package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserResponse never carries the password hash. UpdatedAt is only set on
// profile lookups.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Helper converters
func UserToRegisterResponse(user *entity.User) RegisterResponse {
	return RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func UserToLoginResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func UserToProfileResponse(user *entity.User) UserResponse {
	resp := UserToLoginResponse(user)
	updatedAt := user.UpdatedAt
	resp.UpdatedAt = &updatedAt
	return resp
}
