package view

import (
	"context"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// SettingsPage 个人设置：资料更新 + 主题切换。
type SettingsPage struct {
	deps Deps
}

func NewSettingsPage(deps Deps) *SettingsPage {
	return &SettingsPage{deps: deps}
}

type SettingsView struct {
	User  domain.User
	Theme string
}

func (s *SettingsPage) Load(ctx context.Context) (*SettingsView, error) {
	user, err := s.deps.Session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsView{User: *user, Theme: s.deps.Session.Theme()}, nil
}

// UpdateProfile 更新资料。改密码时旧密码必填、新密码至少 6 位。
func (s *SettingsPage) UpdateProfile(ctx context.Context, req domain.ProfileUpdate) (domain.User, error) {
	if _, err := s.deps.Session.RequireAuth(ctx); err != nil {
		return domain.User{}, err
	}

	checker := validate.New()
	if req.NewPassword != "" {
		checker.Required("old_password", req.OldPassword)
		checker.MinLen("new_password", req.NewPassword, 6)
	}
	if req.NotificationCooldownMinutes < 0 {
		checker.Positive("notification_cooldown_minutes", float64(req.NotificationCooldownMinutes))
	}
	if err := checker.Err(); err != nil {
		return domain.User{}, err
	}

	updated, err := s.deps.Client.UpdateProfile(ctx, req)
	if err != nil {
		return domain.User{}, err
	}
	s.deps.Session.InvalidateProfile(ctx)
	return updated, nil
}

// ToggleTheme 切换主题并返回新值
func (s *SettingsPage) ToggleTheme() string {
	return s.deps.Session.ToggleTheme()
}
