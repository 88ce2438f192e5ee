//go:build unit || e2e || integration

package builder

import (
	reqdto "food-rescue/internal/handler/dto/request"
)

type AuthBuilder struct {
	Email    string
	Password string
	Role     string
	Name     string
	Phone    string
	Address  string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "test@example.com",
		Password: "password123",
		Role:     "donor",
		Name:     "Corner Bakery",
		Phone:    "+81 3-1234-5678",
		Address:  "1-2-3 Shibuya, Tokyo",
	}
}

func (a *AuthBuilder) With(mutate func(*AuthBuilder)) *AuthBuilder {
	mutate(a)
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:    a.Email,
		Password: a.Password,
		Role:     a.Role,
		Name:     a.Name,
		Phone:    a.Phone,
		Address:  a.Address,
	}
}
