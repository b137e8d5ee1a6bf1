package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// ListTambak GET /tambak
func (c *Client) ListTambak(ctx context.Context) ([]domain.Tambak, error) {
	var out []domain.Tambak
	_, err := c.do(ctx, http.MethodGet, "/tambak", nil, &out)
	return out, err
}

// CreateTambak POST /tambak
func (c *Client) CreateTambak(ctx context.Context, payload domain.CreateTambakRequest) (domain.Tambak, error) {
	var out domain.Tambak
	_, err := c.do(ctx, http.MethodPost, "/tambak", payload, &out)
	return out, err
}

// UpdateTambak PUT /tambak/{id}
func (c *Client) UpdateTambak(ctx context.Context, tambakID int, payload domain.CreateTambakRequest) (domain.Tambak, error) {
	var out domain.Tambak
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tambak/%d", tambakID), payload, &out)
	return out, err
}

// DeleteTambak DELETE /tambak/{id}
func (c *Client) DeleteTambak(ctx context.Context, tambakID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tambak/%d", tambakID), nil, nil)
	return err
}
