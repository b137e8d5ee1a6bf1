package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// Monitoring GET /monitoring?last_n=N 池塘+设备+近期读数的聚合视图
func (c *Client) Monitoring(ctx context.Context, lastN int) (domain.MonitoringResponse, error) {
	if lastN <= 0 {
		lastN = 20
	}
	var out domain.MonitoringResponse
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/monitoring?last_n=%d", lastN), nil, &out)
	return out, err
}
