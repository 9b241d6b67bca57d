package gateway

import (
	"context"
	"fmt"
	"net/url"
)

// existsResponse is the wire shape of the uniqueness check endpoints
type existsResponse struct {
	Exists bool `json:"exists"`
}

// CheckEmail reports whether the email is already registered
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	return c.checkExists(ctx, "/auth/check-email", "email", email)
}

// CheckNickname reports whether the nickname is already taken
func (c *Client) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	return c.checkExists(ctx, "/auth/check-nickname", "nickname", nickname)
}

// CheckPhone reports whether the phone number is already registered
func (c *Client) CheckPhone(ctx context.Context, phone string) (bool, error) {
	return c.checkExists(ctx, "/auth/check-phone", "phone", phone)
}

func (c *Client) checkExists(ctx context.Context, path, field, value string) (bool, error) {
	query := url.Values{}
	query.Set(field, value)

	var resp existsResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return false, fmt.Errorf("%s uniqueness check failed: %w", field, err)
	}
	return resp.Exists, nil
}

// Signup submits a direct registration and returns the session token
func (c *Client) Signup(ctx context.Context, req *SignupRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.post(ctx, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignupSocial submits a social registration carrying an external-identity
// token and returns the session token
func (c *Client) SignupSocial(ctx context.Context, req *SocialSignupRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.post(ctx, "/auth/signup/social", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password and returns the session token
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
