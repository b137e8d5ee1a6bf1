package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Download POST JSON 并把 2xx 二进制响应写入 dest。
// 不返回类型化结果；失败时是普通的 *Error。
func (c *Client) Download(ctx context.Context, path string, payload any, dest string) error {
	req := c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)

	if tok := c.tokens.Token(); tok != "" {
		req.SetHeader("Authorization", "Bearer "+tok)
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized {
			c.tokens.ClearToken()
		}
		return &Error{Message: "failed to download", Status: resp.StatusCode()}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create download dir: %w", err)
	}
	if err := os.WriteFile(dest, resp.Body(), 0o644); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}
	return nil
}

type exportCSVRequest struct {
	DeviceID  int    `json:"device_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ExportSensorCSV POST /export/csv，文件名由设备 id 和日期范围拼出。
// 返回保存到的完整路径。
func (c *Client) ExportSensorCSV(ctx context.Context, downloadDir string, deviceID int, startDate, endDate string) (string, error) {
	filename := fmt.Sprintf("sensor_data_%d_%s_%s.csv", deviceID, startDate, endDate)
	dest := filepath.Join(downloadDir, filename)

	payload := exportCSVRequest{DeviceID: deviceID, StartDate: startDate, EndDate: endDate}
	if err := c.Download(ctx, "/export/csv", payload, dest); err != nil {
		return "", err
	}
	return dest, nil
}
