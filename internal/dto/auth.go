package dto

import "github.com/yukikurage/supertask-api/internal/models"

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,max=150"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name" binding:"max=150"`
	LastName        string `json:"last_name" binding:"max=150"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

// UpdateProfileRequest is the body of PATCH /api/auth/profile. A null avatar
// removes it.
type UpdateProfileRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar" binding:"omitempty,url,max=500"`
}

// ProfileDTO represents the public profile of a user
type ProfileDTO struct {
	Avatar *string `json:"avatar"`
	Bio    string  `json:"bio"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Profile   *ProfileDTO `json:"profile"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User    UserDTO `json:"user"`
	Access  string  `json:"access"`
	Message string  `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	// Include profile if preloaded
	if user.Profile != nil {
		dto.Profile = &ProfileDTO{
			Avatar: user.Profile.Avatar,
			Bio:    user.Profile.Bio,
		}
	}

	return dto
}
