package view

import (
	"context"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// UsersPage 用户管理页（仅管理员）：搜索/角色过滤/分页/排序。
type UsersPage struct {
	deps Deps
}

func NewUsersPage(deps Deps) *UsersPage {
	return &UsersPage{deps: deps}
}

type UsersParams struct {
	Search  string
	Role    string
	Page    int
	SortBy  string
	SortDir string
}

func (p UsersParams) normalize() UsersParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
	return p
}

type UsersView struct {
	Users      []domain.User
	Total      int
	Page       int
	TotalPages int
}

func (u *UsersPage) Load(ctx context.Context, params UsersParams) (*UsersView, error) {
	if _, err := u.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	params = params.normalize()

	skip := (params.Page - 1) * PageSize
	limit := PageSize
	listParams := api.ListUsersParams{
		Skip:    &skip,
		Limit:   &limit,
		Search:  params.Search,
		Role:    params.Role,
		SortBy:  params.SortBy,
		SortDir: params.SortDir,
	}

	key := querycache.Key("users", params.Search, params.Role, params.Page, params.SortBy, params.SortDir)
	paged, err := querycache.Fetch(ctx, u.deps.Cache, key, func(ctx context.Context) (api.Paged[domain.User], error) {
		return u.deps.Client.ListUsers(ctx, listParams)
	})
	if err != nil {
		return nil, err
	}

	return &UsersView{
		Users:      paged.Data,
		Total:      paged.Total,
		Page:       params.Page,
		TotalPages: paged.TotalPages(PageSize),
	}, nil
}

// Create 创建用户（校验后提交），成功后所有用户列表查询失效。
func (u *UsersPage) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	if _, err := u.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return domain.User{}, err
	}
	if err := validate.New().
		Required("name", req.Name).
		Required("email", req.Email).
		Email("email", req.Email).
		Required("password", req.Password).
		MinLen("password", req.Password, 6).
		OneOf("role", req.Role, domain.RoleAdmin, domain.RoleOperator, domain.RoleViewer).
		Err(); err != nil {
		return domain.User{}, err
	}

	created, err := u.deps.Client.CreateUser(ctx, req)
	if err != nil {
		return domain.User{}, err
	}
	u.deps.Cache.InvalidatePrefix(ctx, "users")
	return created, nil
}

// Update 更新用户
func (u *UsersPage) Update(ctx context.Context, userID int, req domain.UpdateUserRequest) (domain.User, error) {
	if _, err := u.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return domain.User{}, err
	}
	if req.Role != "" && !domain.ValidRole(req.Role) {
		return domain.User{}, &validate.Error{Fields: map[string]string{"role": "unknown role"}}
	}

	updated, err := u.deps.Client.UpdateUser(ctx, userID, req)
	if err != nil {
		return domain.User{}, err
	}
	u.deps.Cache.InvalidatePrefix(ctx, "users")
	return updated, nil
}

// Delete 删除用户
func (u *UsersPage) Delete(ctx context.Context, userID int) error {
	if _, err := u.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	if err := u.deps.Client.DeleteUser(ctx, userID); err != nil {
		return err
	}
	u.deps.Cache.InvalidatePrefix(ctx, "users")
	return nil
}
