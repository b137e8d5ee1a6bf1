package view

import (
	"context"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
)

// DashboardPage 首页：管理员看全局统计，运营角色看自己的场/设备/告警。
type DashboardPage struct {
	deps Deps
}

func NewDashboardPage(deps Deps) *DashboardPage {
	return &DashboardPage{deps: deps}
}

// DashboardView 角色二选一填充
type DashboardView struct {
	Admin    *AdminDashboard
	Operator *OperatorDashboard
}

type AdminDashboard struct {
	Overview domain.AdminOverview
}

type OperatorDashboard struct {
	Status       domain.DeviceStatusSummary
	Tambak       []domain.Tambak
	UnreadAlerts int
	// Trend 取 monitoring 里第一个池塘第一台设备的近期读数
	Trend []ChartPoint
}

func (p *DashboardPage) Load(ctx context.Context) (*DashboardView, error) {
	user, err := p.deps.Session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleAdmin {
		overview, err := querycache.Fetch(ctx, p.deps.Cache, "admin-overview", p.deps.Client.AdminOverview)
		if err != nil {
			return nil, err
		}
		return &DashboardView{Admin: &AdminDashboard{Overview: overview}}, nil
	}

	status, err := querycache.Fetch(ctx, p.deps.Cache, "devices-status", p.deps.Client.DeviceStatus)
	if err != nil {
		return nil, err
	}
	tambak, err := querycache.Fetch(ctx, p.deps.Cache, "tambak", p.deps.Client.ListTambak)
	if err != nil {
		return nil, err
	}
	unread, err := querycache.Fetch(ctx, p.deps.Cache, "notifications-unread", p.deps.Client.UnreadCount)
	if err != nil {
		return nil, err
	}
	monitoring, err := querycache.Fetch(ctx, p.deps.Cache, "monitoring", func(ctx context.Context) (domain.MonitoringResponse, error) {
		return p.deps.Client.Monitoring(ctx, 12)
	})
	if err != nil {
		return nil, err
	}

	return &DashboardView{Operator: &OperatorDashboard{
		Status:       status,
		Tambak:       tambak,
		UnreadAlerts: unread,
		Trend:        monitoringTrend(monitoring),
	}}, nil
}

// monitoringTrend 第一个池塘第一台设备的历史读数 → 图表点
func monitoringTrend(m domain.MonitoringResponse) []ChartPoint {
	if len(m.KolamList) == 0 || len(m.KolamList[0].Devices) == 0 {
		return nil
	}
	device := m.KolamList[0].Devices[0]
	points := make([]ChartPoint, 0, len(device.HistoricalData))
	for _, item := range device.HistoricalData {
		points = append(points, ChartPoint{
			Timestamp: formatClock(item.Timestamp),
			Suhu:      item.Suhu,
			Ph:        item.Ph,
			Do:        item.Do,
		})
	}
	return points
}
