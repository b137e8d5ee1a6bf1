package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// ProvisioningClient 独立的设备预配客户端：用 X-API-Key 认证，
// 只服务管理员预注册设备 UID 这一条流程，和 bearer token 会话互不相干。
type ProvisioningClient struct {
	rc     *resty.Client
	logger *zap.Logger
}

// NewProvisioningClient 创建预配客户端
func NewProvisioningClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *ProvisioningClient {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("X-API-Key", apiKey)

	return &ProvisioningClient{rc: rc, logger: logger}
}

func (p *ProvisioningClient) do(ctx context.Context, method, path string, body any, out any) error {
	req := p.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	p.logger.Debug("admin provisioning call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
	)

	if resp.IsError() {
		apiErr := &Error{Message: genericFailure, Status: resp.StatusCode()}
		if strings.Contains(resp.Header().Get("Content-Type"), "application/json") {
			var payload any
			if err := json.Unmarshal(resp.Body(), &payload); err == nil {
				apiErr.Payload = payload
				if obj, ok := payload.(map[string]any); ok {
					if detail, ok := obj["detail"].(string); ok && detail != "" {
						apiErr.Message = detail
					}
				}
			}
		} else if text := string(resp.Body()); text != "" {
			apiErr.Payload = text
			apiErr.Message = text
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

// ListDevices GET /admin/devices 已预注册的设备
func (p *ProvisioningClient) ListDevices(ctx context.Context) ([]domain.AdminDevice, error) {
	var out []domain.AdminDevice
	err := p.do(ctx, http.MethodGet, "/admin/devices", nil, &out)
	return out, err
}

type registerDeviceRequest struct {
	UID string `json:"uid"`
}

// RegisterDevice POST /admin/devices 预注册一个设备 UID
func (p *ProvisioningClient) RegisterDevice(ctx context.Context, uid string) (domain.Device, error) {
	var out domain.Device
	err := p.do(ctx, http.MethodPost, "/admin/devices", registerDeviceRequest{UID: uid}, &out)
	return out, err
}
