package view

import (
	"context"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// PondsPage 养殖场/池塘页。管理员没有自己的 tambak/kolam，只看到提示。
type PondsPage struct {
	deps Deps
}

func NewPondsPage(deps Deps) *PondsPage {
	return &PondsPage{deps: deps}
}

type PondsView struct {
	AdminNotice    bool
	Tambak         []domain.Tambak
	ActiveTambakID int
	Kolam          []domain.Kolam
	// DeviceIDs 可绑定到池塘的设备 id 列表
	DeviceIDs []int
}

// Load 组装页面。selectedTambakID <= 0 时落到第一个 tambak。
func (p *PondsPage) Load(ctx context.Context, selectedTambakID int) (*PondsView, error) {
	user, err := p.deps.Session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return &PondsView{AdminNotice: true}, nil
	}

	tambak, err := querycache.Fetch(ctx, p.deps.Cache, "tambak", p.deps.Client.ListTambak)
	if err != nil {
		return nil, err
	}

	view := &PondsView{Tambak: tambak}

	activeID := selectedTambakID
	if activeID <= 0 && len(tambak) > 0 {
		activeID = tambak[0].ID
	}
	view.ActiveTambakID = activeID

	if activeID > 0 {
		kolam, err := querycache.Fetch(ctx, p.deps.Cache, querycache.Key("kolam", activeID),
			func(ctx context.Context) ([]domain.Kolam, error) {
				return p.deps.Client.ListKolam(ctx, activeID)
			})
		if err != nil {
			return nil, err
		}
		view.Kolam = kolam
	}

	devices, err := querycache.Fetch(ctx, p.deps.Cache, "devices", p.deps.Client.ListDevices)
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		view.DeviceIDs = append(view.DeviceIDs, d.ID)
	}
	return view, nil
}

// CreateTambak 创建养殖场（全部字段必填）
func (p *PondsPage) CreateTambak(ctx context.Context, req domain.CreateTambakRequest) (domain.Tambak, error) {
	if err := validate.New().
		Required("name", req.Name).
		Required("country", req.Country).
		Required("province", req.Province).
		Required("city", req.City).
		Required("district", req.District).
		Required("village", req.Village).
		Required("address", req.Address).
		Required("cultivation_type", req.CultivationType).
		Err(); err != nil {
		return domain.Tambak{}, err
	}

	created, err := p.deps.Client.CreateTambak(ctx, req)
	if err != nil {
		return domain.Tambak{}, err
	}
	p.deps.Cache.Invalidate(ctx, "tambak")
	return created, nil
}

// UpdateTambak 更新养殖场
func (p *PondsPage) UpdateTambak(ctx context.Context, tambakID int, req domain.CreateTambakRequest) (domain.Tambak, error) {
	updated, err := p.deps.Client.UpdateTambak(ctx, tambakID, req)
	if err != nil {
		return domain.Tambak{}, err
	}
	p.deps.Cache.Invalidate(ctx, "tambak")
	return updated, nil
}

// DeleteTambak 删除养殖场（其下池塘的缓存一并失效）
func (p *PondsPage) DeleteTambak(ctx context.Context, tambakID int) error {
	if err := p.deps.Client.DeleteTambak(ctx, tambakID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "tambak", querycache.Key("kolam", tambakID))
	return nil
}

// CreateKolam 在当前 tambak 下创建池塘
func (p *PondsPage) CreateKolam(ctx context.Context, req domain.CreateKolamRequest) (domain.Kolam, error) {
	checker := validate.New().
		Required("nama", req.Nama).
		Required("tipe", req.Tipe).
		Required("komoditas", req.Komoditas).
		Positive("panjang", req.Panjang).
		Positive("lebar", req.Lebar).
		Positive("kedalaman", req.Kedalaman)
	if req.TambakID <= 0 {
		checker.Positive("tambak_id", float64(req.TambakID))
	}
	if err := checker.Err(); err != nil {
		return domain.Kolam{}, err
	}

	created, err := p.deps.Client.CreateKolam(ctx, req)
	if err != nil {
		return domain.Kolam{}, err
	}
	p.deps.Cache.Invalidate(ctx, querycache.Key("kolam", req.TambakID))
	return created, nil
}

// UpdateKolam 更新池塘（DeviceID=nil 解绑设备）
func (p *PondsPage) UpdateKolam(ctx context.Context, kolamID, tambakID int, req domain.UpdateKolamRequest) (domain.Kolam, error) {
	updated, err := p.deps.Client.UpdateKolam(ctx, kolamID, req)
	if err != nil {
		return domain.Kolam{}, err
	}
	p.invalidateKolam(ctx, tambakID)
	return updated, nil
}

// DeleteKolam 删除池塘
func (p *PondsPage) DeleteKolam(ctx context.Context, kolamID, tambakID int) error {
	if err := p.deps.Client.DeleteKolam(ctx, kolamID); err != nil {
		return err
	}
	p.invalidateKolam(ctx, tambakID)
	return nil
}

// invalidateKolam tambak 未知时（调用方没传 id）按前缀整体失效，
// 避免真正所属 tambak 的池塘列表在 TTL 内保持过期值。
func (p *PondsPage) invalidateKolam(ctx context.Context, tambakID int) {
	if tambakID > 0 {
		p.deps.Cache.Invalidate(ctx, querycache.Key("kolam", tambakID))
		return
	}
	p.deps.Cache.InvalidatePrefix(ctx, "kolam")
}
