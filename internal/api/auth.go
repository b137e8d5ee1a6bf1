package api

import (
	"context"
	"net/http"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /users/login。只返回 token，不写入任何状态：
// token 的保存由 session 层负责（单一写入方）。
func (c *Client) Login(ctx context.Context, email, password string) (domain.LoginResponse, error) {
	var out domain.LoginResponse
	_, err := c.do(ctx, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password}, &out)
	return out, err
}

// Logout POST /users/logout
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
	return err
}

// Me GET /users/me 当前用户资料
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	_, err := c.do(ctx, http.MethodGet, "/users/me", nil, &out)
	return out, err
}

// UpdateProfile PUT /users/profile
func (c *Client) UpdateProfile(ctx context.Context, payload domain.ProfileUpdate) (domain.User, error) {
	var out domain.User
	_, err := c.do(ctx, http.MethodPut, "/users/profile", payload, &out)
	return out, err
}
