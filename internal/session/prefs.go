package session

import (
	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/store"
)

// 主题常量（默认暗色）
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme 当前主题，仅是一个持久化的显示标记，没有业务逻辑。
func (s *Session) Theme() string {
	if v, err := s.files.Get(store.KeyTheme); err == nil && (v == ThemeLight || v == ThemeDark) {
		return v
	}
	return ThemeDark
}

// ToggleTheme 切换并持久化主题，返回新值。
func (s *Session) ToggleTheme() string {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	if err := s.files.Set(store.KeyTheme, next); err != nil {
		s.logger.Warn("failed to persist theme", zap.Error(err))
	}
	return next
}

// AdminAPIKey 设备预配用的 X-API-Key（仅管理员流程使用）
func (s *Session) AdminAPIKey() string {
	v, err := s.files.Get(store.KeyAPIKey)
	if err != nil {
		return ""
	}
	return v
}

// SetAdminAPIKey 保存（空值即删除）
func (s *Session) SetAdminAPIKey(key string) {
	if err := s.files.Set(store.KeyAPIKey, key); err != nil {
		s.logger.Warn("failed to persist admin api key", zap.Error(err))
	}
}
