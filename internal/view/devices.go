package view

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// scheduleLayout 管理员录入定时停用时间的本地格式
const scheduleLayout = "2006-01-02T15:04"

// DevicesPage 设备页：表格 + 选中行详情 + 认领/状态/间隔等变更，
// 管理员额外有激活/停用/定时停用和 API key 预配子视图。
type DevicesPage struct {
	deps Deps
}

func NewDevicesPage(deps Deps) *DevicesPage {
	return &DevicesPage{deps: deps}
}

type DevicesView struct {
	IsAdmin      bool
	Devices      []domain.Device
	AdminDevices []domain.AdminDevice
	Status       *domain.DeviceStatusSummary
	Selected     *DeviceDetail
	// Provisioned 只在管理员保存了 API key 时加载
	Provisioned []domain.AdminDevice
}

type DeviceDetail struct {
	ID                 int
	UID                string
	Name               string
	Status             string
	LastSeen           *string
	DeactivateAt       *string
	ConnectionInterval *int
	// Trend 非管理员选中设备的近期读数（最新 30 条，按时间正序）
	Trend []ChartPoint
}

// Load 组装设备页。selectedID <= 0 表示未选中任何行。
func (p *DevicesPage) Load(ctx context.Context, selectedID int) (*DevicesView, error) {
	user, err := p.deps.Session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	isAdmin := user.Role == domain.RoleAdmin
	view := &DevicesView{IsAdmin: isAdmin}

	if isAdmin {
		devices, err := querycache.Fetch(ctx, p.deps.Cache, "admin-devices-all", p.deps.Client.ListAllDevices)
		if err != nil {
			return nil, err
		}
		view.AdminDevices = devices

		for _, d := range devices {
			if d.ID == selectedID {
				view.Selected = &DeviceDetail{
					ID:           d.ID,
					UID:          d.UID,
					Name:         d.Name,
					Status:       d.Status,
					LastSeen:     d.LastSeen,
					DeactivateAt: d.DeactivateAt,
				}
			}
		}

		if key := p.deps.Session.AdminAPIKey(); key != "" {
			provisioned, err := querycache.Fetch(ctx, p.deps.Cache, querycache.Key("admin-devices", key),
				func(ctx context.Context) ([]domain.AdminDevice, error) {
					return p.provisioningClient(key).ListDevices(ctx)
				})
			if err != nil {
				// Provisioning listing is a sub-view: a bad key must not
				// take down the whole page.
				p.deps.Logger.Warn("provisioned device listing failed", zap.Error(err))
			} else {
				view.Provisioned = provisioned
			}
		}
		return view, nil
	}

	devices, err := querycache.Fetch(ctx, p.deps.Cache, "devices", p.deps.Client.ListDevices)
	if err != nil {
		return nil, err
	}
	view.Devices = devices

	status, err := querycache.Fetch(ctx, p.deps.Cache, "devices-status", p.deps.Client.DeviceStatus)
	if err != nil {
		return nil, err
	}
	view.Status = &status

	for _, d := range devices {
		if d.ID == selectedID {
			detail := &DeviceDetail{
				ID:                 d.ID,
				UID:                d.UID,
				Name:               d.Name,
				Status:             d.Status,
				LastSeen:           d.LastSeen,
				DeactivateAt:       d.DeactivateAt,
				ConnectionInterval: d.ConnectionInterval,
			}
			detail.Trend = p.recentTrend(ctx, d.UID)
			view.Selected = detail
		}
	}
	return view, nil
}

// recentTrend 选中设备最近 30 条读数，倒序拉取后翻转成时间正序
func (p *DevicesPage) recentTrend(ctx context.Context, uid string) []ChartPoint {
	limit := 30
	key := querycache.Key("sensor", uid, "recent")
	paged, err := querycache.Fetch(ctx, p.deps.Cache, key, func(ctx context.Context) (api.Paged[domain.SensorData], error) {
		return p.deps.Client.ListSensorData(ctx, api.SensorQuery{UID: uid, Limit: &limit, SortDir: "desc"})
	})
	if err != nil {
		p.deps.Logger.Warn("recent readings fetch failed", zap.Error(err))
		return nil
	}

	points := make([]ChartPoint, 0, len(paged.Data))
	for i := len(paged.Data) - 1; i >= 0; i-- {
		item := paged.Data[i]
		points = append(points, ChartPoint{
			Timestamp: formatClock(item.Timestamp),
			Suhu:      item.Suhu,
			Ph:        item.Ph,
			Do:        item.Do,
		})
	}
	return points
}

// Claim 按 UID 认领设备（非管理员）
func (p *DevicesPage) Claim(ctx context.Context, uid, name string) (domain.Device, error) {
	if err := validate.New().
		Required("uid", uid).
		Required("name", name).
		Err(); err != nil {
		return domain.Device{}, err
	}
	device, err := p.deps.Client.ClaimDevice(ctx, uid, name)
	if err != nil {
		return domain.Device{}, err
	}
	p.deps.Cache.Invalidate(ctx, "devices", "devices-status")
	return device, nil
}

// Remove 删除设备（按 UID）
func (p *DevicesPage) Remove(ctx context.Context, uid string) error {
	if err := p.deps.Client.DeleteDevice(ctx, uid); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "devices")
	return nil
}

// SetOnline 把设备标记为在线
func (p *DevicesPage) SetOnline(ctx context.Context, deviceID int) error {
	if err := p.deps.Client.SetOnline(ctx, deviceID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "devices")
	return nil
}

// SetMaintenance 把设备标记为维护中
func (p *DevicesPage) SetMaintenance(ctx context.Context, deviceID int) error {
	if err := p.deps.Client.SetMaintenance(ctx, deviceID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "devices")
	return nil
}

// Rename 修改设备名称
func (p *DevicesPage) Rename(ctx context.Context, deviceID int, name string) error {
	if err := validate.New().Required("name", name).Err(); err != nil {
		return err
	}
	if _, err := p.deps.Client.UpdateDevice(ctx, deviceID, domain.UpdateDeviceRequest{Name: name}); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "devices")
	return nil
}

// Move 把设备移到另一个池塘；两侧池塘的缓存都可能过期，按前缀失效
func (p *DevicesPage) Move(ctx context.Context, deviceID, targetKolamID int) error {
	if targetKolamID <= 0 {
		return validate.New().Positive("target_kolam_id", float64(targetKolamID)).Err()
	}
	if err := p.deps.Client.MoveDevice(ctx, deviceID, targetKolamID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "devices")
	p.deps.Cache.InvalidatePrefix(ctx, "kolam")
	return nil
}

// Thresholds 当前阈值（经缓存）
func (p *DevicesPage) Thresholds(ctx context.Context, deviceID int) (domain.DeviceThreshold, error) {
	key := querycache.Key("thresholds", deviceID)
	return querycache.Fetch(ctx, p.deps.Cache, key, func(ctx context.Context) (domain.DeviceThreshold, error) {
		return p.deps.Client.Thresholds(ctx, deviceID)
	})
}

// UpdateThresholds 只提交设置了的字段；min/max 成对时 min 必须小于 max
func (p *DevicesPage) UpdateThresholds(ctx context.Context, deviceID int, payload domain.DeviceThreshold) (domain.DeviceThreshold, error) {
	for _, pair := range []struct {
		name     string
		min, max *float64
	}{
		{"temp", payload.TempMin, payload.TempMax},
		{"ph", payload.PhMin, payload.PhMax},
		{"salinitas", payload.SalinitasMin, payload.SalinitasMax},
	} {
		if pair.min != nil && pair.max != nil && *pair.min >= *pair.max {
			return domain.DeviceThreshold{}, &validate.Error{
				Fields: map[string]string{pair.name: "min must be below max"},
			}
		}
	}

	updated, err := p.deps.Client.UpdateThresholds(ctx, deviceID, payload)
	if err != nil {
		return domain.DeviceThreshold{}, err
	}
	p.deps.Cache.Invalidate(ctx, querycache.Key("thresholds", deviceID))
	return updated, nil
}

// SetInterval 修改上报间隔（分钟）
func (p *DevicesPage) SetInterval(ctx context.Context, deviceID, minutes int) error {
	if minutes <= 0 {
		return validate.New().Positive("interval", float64(minutes)).Err()
	}
	if err := p.deps.Client.UpdateInterval(ctx, deviceID, minutes); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "devices")
	return nil
}

// AdminSetStatus 管理员直接改设备状态
func (p *DevicesPage) AdminSetStatus(ctx context.Context, deviceID int, status string) error {
	if _, err := p.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	if err := validate.New().
		OneOf("status", status, domain.DeviceOnline, domain.DeviceOffline, domain.DeviceMaintenance).
		Err(); err != nil {
		return err
	}
	if _, err := p.deps.Client.SetAdminDeviceStatus(ctx, deviceID, status); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "admin-devices-all")
	return nil
}

// AdminActivate / AdminDeactivate 激活与停用
func (p *DevicesPage) AdminActivate(ctx context.Context, deviceID int) error {
	if _, err := p.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := p.deps.Client.ActivateDevice(ctx, deviceID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "admin-devices-all")
	return nil
}

func (p *DevicesPage) AdminDeactivate(ctx context.Context, deviceID int) error {
	if _, err := p.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := p.deps.Client.DeactivateDevice(ctx, deviceID); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "admin-devices-all")
	return nil
}

// AdminSchedule 设置定时停用。localValue 是本地时间 "2006-01-02T15:04"，
// 提交前换算成 UTC；空串表示清除计划（提交 null）。
func (p *DevicesPage) AdminSchedule(ctx context.Context, deviceID int, localValue string) error {
	if _, err := p.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}

	var at *time.Time
	if localValue != "" {
		parsed, err := time.ParseInLocation(scheduleLayout, localValue, time.Local)
		if err != nil {
			return &validate.Error{Fields: map[string]string{"deactivate_at": "must look like 2006-01-02T15:04"}}
		}
		utc := parsed.UTC()
		at = &utc
	}

	if _, err := p.deps.Client.ScheduleDeviceDeactivation(ctx, deviceID, at); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, "admin-devices-all")
	return nil
}

// RegisterProvisioned 用保存的 API key 预注册一个设备 UID
func (p *DevicesPage) RegisterProvisioned(ctx context.Context, uid string) error {
	if _, err := p.deps.Session.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	key := p.deps.Session.AdminAPIKey()
	if err := validate.New().
		Required("api_key", key).
		Required("uid", uid).
		Err(); err != nil {
		return err
	}
	if _, err := p.provisioningClient(key).RegisterDevice(ctx, uid); err != nil {
		return err
	}
	p.deps.Cache.Invalidate(ctx, querycache.Key("admin-devices", key))
	return nil
}

func (p *DevicesPage) provisioningClient(apiKey string) *api.ProvisioningClient {
	timeout := time.Duration(p.deps.Config.API.TimeoutSeconds) * time.Second
	return api.NewProvisioningClient(p.deps.Config.API.BaseURL, apiKey, timeout, p.deps.Logger)
}

