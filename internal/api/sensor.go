package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// SensorQuery 读数查询参数。UID 必填；其余零值参数不进入查询串。
type SensorQuery struct {
	UID       string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Skip      *int
	Limit     *int
	SortDir   string // "asc" | "desc"
}

func (q SensorQuery) encode() string {
	v := url.Values{}
	v.Set("uid", q.UID)
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	if q.Skip != nil {
		v.Set("skip", strconv.Itoa(*q.Skip))
	}
	if q.Limit != nil {
		v.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.SortDir != "" {
		v.Set("sort_dir", q.SortDir)
	}
	return v.Encode()
}

// ListSensorData GET /sensor（带 X-Total-Count）
func (c *Client) ListSensorData(ctx context.Context, query SensorQuery) (Paged[domain.SensorData], error) {
	return getPaged[domain.SensorData](ctx, c, "/sensor?"+query.encode())
}

// ListAdminSensorData GET /admin/sensor 管理员跨租户读数查询
func (c *Client) ListAdminSensorData(ctx context.Context, query SensorQuery) (Paged[domain.SensorData], error) {
	return getPaged[domain.SensorData](ctx, c, "/admin/sensor?"+query.encode())
}
