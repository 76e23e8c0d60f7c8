package dto

import (
	"time"

	"github.com/eventreg/event-registration-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never leaves
// the service layer.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponseDTO is returned from signup and login: the stored user plus a
// signed bearer token.
type AuthResponseDTO struct {
	UserDTO
	Token string `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToAuthResponseDTO pairs a user with their freshly issued token.
func ToAuthResponseDTO(user models.User, token string) AuthResponseDTO {
	return AuthResponseDTO{
		UserDTO: ToUserDTO(user),
		Token:   token,
	}
}
