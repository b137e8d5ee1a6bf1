package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// AdminOverview GET /admin/overview 全局统计
func (c *Client) AdminOverview(ctx context.Context) (domain.AdminOverview, error) {
	var out domain.AdminOverview
	_, err := c.do(ctx, http.MethodGet, "/admin/overview", nil, &out)
	return out, err
}

// ListAllDevices GET /admin/devices/all 跨租户设备列表
func (c *Client) ListAllDevices(ctx context.Context) ([]domain.AdminDevice, error) {
	var out []domain.AdminDevice
	_, err := c.do(ctx, http.MethodGet, "/admin/devices/all", nil, &out)
	return out, err
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetAdminDeviceStatus PUT /admin/devices/{id}/status
func (c *Client) SetAdminDeviceStatus(ctx context.Context, deviceID int, status string) (domain.AdminDevice, error) {
	var out domain.AdminDevice
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/devices/%d/status", deviceID), setStatusRequest{Status: status}, &out)
	return out, err
}

// ActivateDevice PUT /admin/devices/{id}/activate
func (c *Client) ActivateDevice(ctx context.Context, deviceID int) (domain.AdminDevice, error) {
	var out domain.AdminDevice
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/devices/%d/activate", deviceID), nil, &out)
	return out, err
}

// DeactivateDevice PUT /admin/devices/{id}/deactivate
func (c *Client) DeactivateDevice(ctx context.Context, deviceID int) (domain.AdminDevice, error) {
	var out domain.AdminDevice
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/devices/%d/deactivate", deviceID), nil, &out)
	return out, err
}

type scheduleRequest struct {
	DeactivateAt *string `json:"deactivate_at"`
}

// ScheduleDeviceDeactivation PUT /admin/devices/{id}/schedule。
// at 非 nil 时提交 UTC RFC3339 时间戳；nil 提交 null 清除计划。
func (c *Client) ScheduleDeviceDeactivation(ctx context.Context, deviceID int, at *time.Time) (domain.AdminDevice, error) {
	var body scheduleRequest
	if at != nil {
		iso := at.UTC().Format(time.RFC3339)
		body.DeactivateAt = &iso
	}
	var out domain.AdminDevice
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/devices/%d/schedule", deviceID), body, &out)
	return out, err
}
