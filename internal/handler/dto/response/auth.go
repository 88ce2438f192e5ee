package response

import (
	"food-rescue/internal/usecase/commands"
	"food-rescue/internal/usecase/queries"
)

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresIn   int64             `json:"expires_in"`
	User        *queries.UserView `json:"user"`
}

func NewLoginResponse(result *commands.LoginResult, u *queries.UserView) LoginResponse {
	return LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		User:        u,
	}
}
