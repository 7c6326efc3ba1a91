package backend

import (
	"context"
	"net/http"
)

// Register creates a donor or volunteer account.
func (c *Client) Register(ctx context.Context, caller Caller, req RegisterRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, caller, call{operation: "register", method: http.MethodPost, path: "/api/auth/register", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges email and password for a credential and role.
func (c *Client) Login(ctx context.Context, caller Caller, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, caller, call{operation: "login", method: http.MethodPost, path: "/api/auth/login", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
