package view

import (
	"context"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/export"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// ReadingsPage 读数浏览页：设备 + 日期范围过滤，分页排序，CSV/XLSX 导出。
type ReadingsPage struct {
	deps Deps
}

func NewReadingsPage(deps Deps) *ReadingsPage {
	return &ReadingsPage{deps: deps}
}

// ReadingsParams 页面本地状态。Page 从 1 开始。
type ReadingsParams struct {
	UID       string
	StartDate string // YYYY-MM-DD
	EndDate   string
	Page      int
	SortDir   string // "asc" | "desc"
}

func (p ReadingsParams) normalize() ReadingsParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
	return p
}

// DeviceOption 设备选择器条目
type DeviceOption struct {
	ID    int
	UID   string
	Name  string
	Owner string
}

type ReadingsView struct {
	Devices    []DeviceOption
	Rows       []domain.SensorData
	Total      int
	Page       int
	TotalPages int
}

// Load 组装页面。未选择设备时只返回设备选择器。
func (r *ReadingsPage) Load(ctx context.Context, params ReadingsParams) (*ReadingsView, error) {
	user, err := r.deps.Session.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	isAdmin := user.Role == domain.RoleAdmin
	params = params.normalize()

	view := &ReadingsView{Page: params.Page, TotalPages: 1}
	view.Devices, err = r.deviceOptions(ctx, isAdmin)
	if err != nil {
		return nil, err
	}
	if params.UID == "" {
		return view, nil
	}

	skip := (params.Page - 1) * PageSize
	limit := PageSize
	query := api.SensorQuery{
		UID:       params.UID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Skip:      &skip,
		Limit:     &limit,
		SortDir:   params.SortDir,
	}

	key := querycache.Key("sensor", params.UID, params.StartDate, params.EndDate, params.Page, params.SortDir, isAdmin)
	paged, err := querycache.Fetch(ctx, r.deps.Cache, key, func(ctx context.Context) (api.Paged[domain.SensorData], error) {
		if isAdmin {
			return r.deps.Client.ListAdminSensorData(ctx, query)
		}
		return r.deps.Client.ListSensorData(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	view.Rows = paged.Data
	view.Total = paged.Total
	view.TotalPages = paged.TotalPages(PageSize)
	return view, nil
}

func (r *ReadingsPage) deviceOptions(ctx context.Context, isAdmin bool) ([]DeviceOption, error) {
	if isAdmin {
		devices, err := querycache.Fetch(ctx, r.deps.Cache, "admin-devices-all", r.deps.Client.ListAllDevices)
		if err != nil {
			return nil, err
		}
		options := make([]DeviceOption, 0, len(devices))
		for _, d := range devices {
			opt := DeviceOption{ID: d.ID, UID: d.UID, Name: d.Name}
			if d.UserName != nil {
				opt.Owner = *d.UserName
			}
			options = append(options, opt)
		}
		return options, nil
	}

	devices, err := querycache.Fetch(ctx, r.deps.Cache, "devices", r.deps.Client.ListDevices)
	if err != nil {
		return nil, err
	}
	options := make([]DeviceOption, 0, len(devices))
	for _, d := range devices {
		options = append(options, DeviceOption{ID: d.ID, UID: d.UID, Name: d.Name})
	}
	return options, nil
}

// ExportCSV 把当前过滤条件交给服务端导出，保存返回的二进制。
// 设备与完整日期范围都必填。返回保存路径。
func (r *ReadingsPage) ExportCSV(ctx context.Context, params ReadingsParams) (string, error) {
	if err := validate.New().
		Required("uid", params.UID).
		Required("start_date", params.StartDate).
		Required("end_date", params.EndDate).
		Err(); err != nil {
		return "", err
	}

	user, err := r.deps.Session.RequireAuth(ctx)
	if err != nil {
		return "", err
	}
	options, err := r.deviceOptions(ctx, user.Role == domain.RoleAdmin)
	if err != nil {
		return "", err
	}

	deviceID := 0
	for _, opt := range options {
		if opt.UID == params.UID {
			deviceID = opt.ID
			break
		}
	}
	if deviceID == 0 {
		return "", &validate.Error{Fields: map[string]string{"uid": "unknown device"}}
	}

	return r.deps.Client.ExportSensorCSV(ctx, r.deps.Config.DownloadDir, deviceID, params.StartDate, params.EndDate)
}

// ExportXLSX 把当前已加载的一页读数写成本地 .xlsx 快照。
func (r *ReadingsPage) ExportXLSX(ctx context.Context, params ReadingsParams) (string, error) {
	if err := validate.New().Required("uid", params.UID).Err(); err != nil {
		return "", err
	}
	view, err := r.Load(ctx, params)
	if err != nil {
		return "", err
	}
	if len(view.Rows) == 0 {
		return "", &validate.Error{Fields: map[string]string{"rows": "nothing to export"}}
	}
	return export.WriteSensorXLSX(r.deps.Config.DownloadDir, params.UID, view.Rows)
}
