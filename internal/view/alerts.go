package view

import (
	"context"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
)

// AlertsPage 告警页：最近 30 天的通知列表 + 已读标记。
// 管理员没有全局告警视图（后端未开放），只看到提示。
type AlertsPage struct {
	deps Deps
}

func NewAlertsPage(deps Deps) *AlertsPage {
	return &AlertsPage{deps: deps}
}

type AlertsView struct {
	AdminNotice   bool
	Notifications []domain.Notification
}

func (p *AlertsPage) Load(ctx context.Context) (*AlertsView, error) {
	user, err := p.deps.Session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return &AlertsView{AdminNotice: true}, nil
	}

	notifications, err := querycache.Fetch(ctx, p.deps.Cache, "notifications",
		func(ctx context.Context) ([]domain.Notification, error) {
			return p.deps.Client.ListNotifications(ctx, api.NotificationQuery{Days: 30, Limit: 100})
		})
	if err != nil {
		return nil, err
	}
	return &AlertsView{Notifications: notifications}, nil
}

// MarkRead 标记单条已读；通知列表和未读计数都要重新抓取。
func (p *AlertsPage) MarkRead(ctx context.Context, notificationID int) error {
	if err := p.deps.Client.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "notifications", "notifications-unread")
	return nil
}

// MarkAllRead 全部标记已读
func (p *AlertsPage) MarkAllRead(ctx context.Context) error {
	if err := p.deps.Client.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "notifications", "notifications-unread")
	return nil
}
