package session

import (
	"context"
	"fmt"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// RequireAuth 认证守卫：未登录返回 ErrNotAuthenticated，
// 否则返回已解析的用户。
func (s *Session) RequireAuth(ctx context.Context) (*domain.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RequireRole 角色守卫：已认证但角色不在允许列表时返回 ErrForbidden。
func (s *Session) RequireRole(ctx context.Context, allowed ...string) (*domain.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range allowed {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrForbidden, user.Role)
}
