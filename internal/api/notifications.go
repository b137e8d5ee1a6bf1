package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// NotificationQuery 告警列表参数（零值不进入查询串）
type NotificationQuery struct {
	Days       int
	UnreadOnly bool
	Skip       int
	Limit      int
}

func (q NotificationQuery) encode() string {
	v := url.Values{}
	if q.Days > 0 {
		v.Set("days", strconv.Itoa(q.Days))
	}
	if q.UnreadOnly {
		v.Set("unread_only", "true")
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

// ListNotifications GET /notifications
func (c *Client) ListNotifications(ctx context.Context, query NotificationQuery) ([]domain.Notification, error) {
	var out []domain.Notification
	_, err := c.do(ctx, http.MethodGet, "/notifications?"+query.encode(), nil, &out)
	return out, err
}

// MarkNotificationRead PUT /notifications/{id}/read
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d/read", notificationID), nil, nil)
	return err
}

// MarkAllNotificationsRead PUT /notifications/read-all
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
	return err
}

// UnreadCount GET /notifications/unread-count（返回裸数字）
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out int
	_, err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &out)
	return out, err
}
