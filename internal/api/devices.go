package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// ListDevices GET /devices 当前用户的设备
func (c *Client) ListDevices(ctx context.Context) ([]domain.Device, error) {
	var out []domain.Device
	_, err := c.do(ctx, http.MethodGet, "/devices", nil, &out)
	return out, err
}

// ClaimDevice POST /devices 按 UID 认领设备
func (c *Client) ClaimDevice(ctx context.Context, uid, name string) (domain.Device, error) {
	var out domain.Device
	_, err := c.do(ctx, http.MethodPost, "/devices", domain.ClaimDeviceRequest{UID: uid, Name: name}, &out)
	return out, err
}

// UpdateDevice PUT /devices/{id}
func (c *Client) UpdateDevice(ctx context.Context, deviceID int, payload domain.UpdateDeviceRequest) (domain.Device, error) {
	var out domain.Device
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/devices/%d", deviceID), payload, &out)
	return out, err
}

// DeleteDevice DELETE /devices/{uid}（删除接口按 UID 寻址，不是数字 id）
func (c *Client) DeleteDevice(ctx context.Context, deviceUID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/devices/"+url.PathEscape(deviceUID), nil, nil)
	return err
}

// DeviceStatus GET /devices/status/ 在线/离线/维护汇总
func (c *Client) DeviceStatus(ctx context.Context) (domain.DeviceStatusSummary, error) {
	var out domain.DeviceStatusSummary
	_, err := c.do(ctx, http.MethodGet, "/devices/status/", nil, &out)
	return out, err
}

type moveDeviceRequest struct {
	TargetKolamID int `json:"target_kolam_id"`
}

// MoveDevice POST /devices/{id}/move 把设备移到另一个池塘
func (c *Client) MoveDevice(ctx context.Context, deviceID, targetKolamID int) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/devices/%d/move", deviceID), moveDeviceRequest{TargetKolamID: targetKolamID}, nil)
	return err
}

// SetMaintenance PUT /devices/{id}/maintenance
func (c *Client) SetMaintenance(ctx context.Context, deviceID int) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/devices/%d/maintenance", deviceID), nil, nil)
	return err
}

// SetOnline PUT /devices/{id}/online
func (c *Client) SetOnline(ctx context.Context, deviceID int) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/devices/%d/online", deviceID), nil, nil)
	return err
}

// UpdateInterval PUT /devices/{id}/interval?interval=N（分钟，走查询参数）
func (c *Client) UpdateInterval(ctx context.Context, deviceID, intervalMinutes int) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/devices/%d/interval?interval=%d", deviceID, intervalMinutes), nil, nil)
	return err
}

// Thresholds GET /devices/{id}/thresholds
func (c *Client) Thresholds(ctx context.Context, deviceID int) (domain.DeviceThreshold, error) {
	var out domain.DeviceThreshold
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/devices/%d/thresholds", deviceID), nil, &out)
	return out, err
}

// UpdateThresholds PUT /devices/{id}/thresholds（未设置的指针字段不序列化）
func (c *Client) UpdateThresholds(ctx context.Context, deviceID int, payload domain.DeviceThreshold) (domain.DeviceThreshold, error) {
	payload.DeviceID = 0 // path 已携带 id
	var out domain.DeviceThreshold
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/devices/%d/thresholds", deviceID), payload, &out)
	return out, err
}
