package expensemgr

import (
	"context"
	"net/http"
)

const (
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
	mePath       = "/api/auth/me"
)

// authService implements the AuthService interface
type authService struct {
	client *Client
}

// meResponse is the wire shape of the current-user endpoint
type meResponse struct {
	User *User `json:"user" validate:"required"`
}

// Register creates an account and returns a session
func (s *authService) Register(ctx context.Context, params *RegisterParams) (*AuthResponse, error) {
	if params == nil {
		params = &RegisterParams{}
	}

	var result AuthResponse
	if err := s.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   registerPath,
		Body:   params,
	}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Login exchanges credentials for a session
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var result AuthResponse
	if err := s.client.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   &LoginParams{Email: email, Password: password},
	}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Me returns the user the current token belongs to
func (s *authService) Me(ctx context.Context) (*User, error) {
	var result meResponse
	if err := s.client.Do(ctx, &Request{Method: http.MethodGet, Path: mePath}, &result); err != nil {
		return nil, err
	}

	return result.User, nil
}
