package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/store"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// State 会话状态机：无 token → 有 token 但资料未解析 → 已认证
type State int

const (
	StateUnauthenticated State = iota
	StateResolving
	StateAuthenticated
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("role not allowed")
)

// Session 会话对象：bearer token 的唯一持有者和写入方。
// token 镜像到 FileStore，进程重启后会话仍可恢复。
type Session struct {
	files  *store.FileStore
	cache  *querycache.Cache
	logger *zap.Logger

	mu     sync.RWMutex
	token  string
	user   *domain.User
	client *api.Client
}

// New 创建会话并从本地状态恢复已保存的 token
func New(files *store.FileStore, cache *querycache.Cache, logger *zap.Logger) *Session {
	s := &Session{
		files:  files,
		cache:  cache,
		logger: logger,
	}
	if tok, err := files.Get(store.KeyToken); err == nil {
		s.token = tok
	}
	return s
}

// AttachClient 注入 API 客户端。客户端以本会话为 TokenSource，
// 所以要在两者都构造完后再接线。
func (s *Session) AttachClient(c *api.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = c
}

// Token 实现 api.TokenSource
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ClearToken 实现 api.TokenSource；任何调用点收到 401 都会走到这里。
func (s *Session) ClearToken() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.files.Delete(store.KeyToken); err != nil {
		s.logger.Warn("failed to clear stored token", zap.Error(err))
	}
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()

	if err := s.files.Set(store.KeyToken, token); err != nil {
		s.logger.Warn("failed to persist token", zap.Error(err))
	}
}

// State 当前会话状态（不触发网络调用）
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return StateUnauthenticated
	}
	if s.user == nil {
		return StateResolving
	}
	return StateAuthenticated
}

// Login 校验输入、调用登录接口并保存 token，随后立刻解析用户资料。
func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := validate.New().
		Required("email", email).
		Email("email", email).
		Required("password", password).
		Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setToken(resp.AccessToken)
	s.cache.Invalidate(ctx, "me")

	s.logger.Info("login succeeded", zap.String("email", email))
	return s.CurrentUser(ctx)
}

// Logout 尽力调用登出接口；无论成败都清空 token 和全部缓存查询。
func (s *Session) Logout(ctx context.Context) {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if err := client.Logout(ctx); err != nil {
		// Session is cleared regardless.
		s.logger.Warn("logout request failed", zap.Error(err))
	}
	s.ClearToken()
	s.cache.Clear(ctx)
	s.logger.Info("session cleared")
}

// CurrentUser 解析当前用户资料（经缓存）。token 失效时回到未认证态。
func (s *Session) CurrentUser(ctx context.Context) (*domain.User, error) {
	s.mu.RLock()
	token := s.token
	user := s.user
	client := s.client
	s.mu.RUnlock()

	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if user != nil {
		return user, nil
	}

	resolved, err := querycache.Fetch(ctx, s.cache, "me", func(ctx context.Context) (domain.User, error) {
		return client.Me(ctx)
	})
	if err != nil {
		// Stale or invalid token: drop it so the state machine lands on
		// unauthenticated rather than looping on a dead profile fetch.
		s.ClearToken()
		s.logger.Warn("profile resolution failed", zap.Error(err))
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	s.user = &resolved
	s.mu.Unlock()
	return &resolved, nil
}

// InvalidateProfile 资料更新后强制下次重新抓取
func (s *Session) InvalidateProfile(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.cache.Invalidate(ctx, "me")
}
