package request

import (
	"food-rescue/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=donor recipient"`
	Name     string `json:"name" binding:"required,max=200"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Address  string `json:"address" binding:"omitempty,max=200"`
}

// RegisterInput is the validated form of RegisterRequest.
type RegisterInput struct {
	Credentials user.Credentials
	Role        user.Role
	Profile     user.Profile
}

func (r *RegisterRequest) ToDomain() (RegisterInput, error) {
	credentials, err := user.NewCredentials(r.Email, r.Password)
	if err != nil {
		return RegisterInput{}, err
	}
	role, err := user.NewRole(r.Role)
	if err != nil {
		return RegisterInput{}, err
	}
	profile, err := user.NewProfile(r.Name, r.Phone, r.Address)
	if err != nil {
		return RegisterInput{}, err
	}
	return RegisterInput{Credentials: credentials, Role: role, Profile: profile}, nil
}
