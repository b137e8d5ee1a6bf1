package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource 提供当前 bearer token。客户端只读；唯一的写路径是
// 401 响应触发的 ClearToken，token 失效在传输层统一处理。
type TokenSource interface {
	Token() string
	ClearToken()
}

// NopTokenSource 无认证（登录前 / 测试用）
type NopTokenSource struct{}

func (NopTokenSource) Token() string { return "" }
func (NopTokenSource) ClearToken()   {}

// Client AquaNotes 后端 API 客户端
type Client struct {
	rc     *resty.Client
	tokens TokenSource
	logger *zap.Logger
}

// NewClient 创建 API 客户端
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if tokens == nil {
		tokens = NopTokenSource{}
	}

	return &Client{
		rc:     rc,
		tokens: tokens,
		logger: logger,
	}
}

// Paged 带 X-Total-Count 的分页响应
type Paged[T any] struct {
	Data     []T
	Total    int
	HasTotal bool
}

// TotalPages 按页大小计算总页数（至少 1 页）
func (p Paged[T]) TotalPages(pageSize int) int {
	if !p.HasTotal || pageSize <= 0 {
		return 1
	}
	pages := (p.Total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// do 发送一次请求并把 2xx JSON 响应解码到 out。
// out 为 nil 或响应为 204 时跳过解码。
func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*resty.Response, error) {
	req := c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	if tok := c.tokens.Token(); tok != "" {
		req.SetHeader("Authorization", "Bearer "+tok)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
	)

	if resp.IsError() {
		return resp, c.responseError(resp)
	}
	if resp.StatusCode() == http.StatusNoContent || out == nil {
		return resp, nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return resp, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp, nil
}

// responseError 把非 2xx 响应映射为 *Error。
// JSON 响应取 detail 字段作为 message；非 JSON 用原始文本；401 额外清除 token。
func (c *Client) responseError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status == http.StatusUnauthorized {
		c.tokens.ClearToken()
	}

	apiErr := &Error{Message: genericFailure, Status: status}

	contentType := resp.Header().Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var payload any
		if err := json.Unmarshal(resp.Body(), &payload); err == nil {
			apiErr.Payload = payload
			if obj, ok := payload.(map[string]any); ok {
				if detail, ok := obj["detail"].(string); ok && detail != "" {
					apiErr.Message = detail
				}
			}
		}
		// parse failure leaves Payload nil and the generic message
	} else {
		text := string(resp.Body())
		apiErr.Payload = text
		if text != "" {
			apiErr.Message = text
		}
	}
	return apiErr
}

// getPaged GET 列表接口并读取 X-Total-Count 响应头。
// 响应头缺失或无法解析时 HasTotal=false，不视为错误。
func getPaged[T any](ctx context.Context, c *Client, path string) (Paged[T], error) {
	var items []T
	resp, err := c.do(ctx, http.MethodGet, path, nil, &items)
	if err != nil {
		return Paged[T]{}, err
	}

	paged := Paged[T]{Data: items}
	if raw := resp.Header().Get("X-Total-Count"); raw != "" {
		if total, err := strconv.Atoi(raw); err == nil {
			paged.Total = total
			paged.HasTotal = true
		}
	}
	return paged, nil
}
