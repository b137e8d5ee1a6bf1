package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// ListUsersParams 用户列表过滤/分页/排序参数。
// 零值参数不会出现在查询串中。
type ListUsersParams struct {
	Skip    *int
	Limit   *int
	Search  string
	Role    string
	SortBy  string
	SortDir string
}

func (p ListUsersParams) encode() string {
	q := url.Values{}
	if p.Skip != nil {
		q.Set("skip", strconv.Itoa(*p.Skip))
	}
	if p.Limit != nil {
		q.Set("limit", strconv.Itoa(*p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Role != "" {
		q.Set("role", p.Role)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	if p.SortDir != "" {
		q.Set("sort_dir", p.SortDir)
	}
	return q.Encode()
}

// ListUsers GET /users（带 X-Total-Count）
func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) (Paged[domain.User], error) {
	return getPaged[domain.User](ctx, c, "/users?"+params.encode())
}

// CreateUser POST /users
func (c *Client) CreateUser(ctx context.Context, payload domain.CreateUserRequest) (domain.User, error) {
	var out domain.User
	_, err := c.do(ctx, http.MethodPost, "/users", payload, &out)
	return out, err
}

// UpdateUser PUT /users/{id}
func (c *Client) UpdateUser(ctx context.Context, userID int, payload domain.UpdateUserRequest) (domain.User, error) {
	var out domain.User
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", userID), payload, &out)
	return out, err
}

// DeleteUser DELETE /users/{id}
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil)
	return err
}
