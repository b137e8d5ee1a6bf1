package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// ListKolam GET /kolam?tambak_id=N 某个养殖场的池塘
func (c *Client) ListKolam(ctx context.Context, tambakID int) ([]domain.Kolam, error) {
	var out []domain.Kolam
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/kolam?tambak_id=%d", tambakID), nil, &out)
	return out, err
}

// CreateKolam POST /kolam
func (c *Client) CreateKolam(ctx context.Context, payload domain.CreateKolamRequest) (domain.Kolam, error) {
	var out domain.Kolam
	_, err := c.do(ctx, http.MethodPost, "/kolam", payload, &out)
	return out, err
}

// UpdateKolam PUT /kolam/{id}（DeviceID=nil 提交 null 解绑设备）
func (c *Client) UpdateKolam(ctx context.Context, kolamID int, payload domain.UpdateKolamRequest) (domain.Kolam, error) {
	var out domain.Kolam
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/kolam/%d", kolamID), payload, &out)
	return out, err
}

// DeleteKolam DELETE /kolam/{id}
func (c *Client) DeleteKolam(ctx context.Context, kolamID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/kolam/%d", kolamID), nil, nil)
	return err
}
