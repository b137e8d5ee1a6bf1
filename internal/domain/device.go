package domain

// 设备状态常量
const (
	DeviceOnline      = "online"
	DeviceOffline     = "offline"
	DeviceMaintenance = "maintenance"
)

// Device 用户侧设备（对应后端 DeviceResponse）
type Device struct {
	ID                 int     `json:"id"`
	UID                string  `json:"uid"`
	Name               string  `json:"name"`
	Status             string  `json:"status"`
	IsActive           *bool   `json:"is_active,omitempty"`
	LastSeen           *string `json:"last_seen,omitempty"`
	DeactivateAt       *string `json:"deactivate_at,omitempty"`
	ConnectionInterval *int    `json:"connection_interval,omitempty"`
}

// AdminDevice 管理员跨租户视图的设备（额外带持有者信息）
type AdminDevice struct {
	ID           int     `json:"id"`
	UID          string  `json:"uid"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	IsActive     *bool   `json:"is_active,omitempty"`
	LastSeen     *string `json:"last_seen,omitempty"`
	DeactivateAt *string `json:"deactivate_at,omitempty"`
	UserName     *string `json:"user_name,omitempty"`
	Registered   bool    `json:"registered"`
}

// DeviceStatusSummary /devices/status/ 的汇总响应
type DeviceStatusSummary struct {
	Online      int      `json:"online"`
	Offline     int      `json:"offline"`
	Maintenance int      `json:"maintenance"`
	Devices     []Device `json:"devices"`
}

// DeviceThreshold 每设备传感器阈值（服务端用于生成告警）
type DeviceThreshold struct {
	DeviceID     int      `json:"device_id,omitempty"`
	TempMin      *float64 `json:"temp_min,omitempty"`
	TempMax      *float64 `json:"temp_max,omitempty"`
	PhMin        *float64 `json:"ph_min,omitempty"`
	PhMax        *float64 `json:"ph_max,omitempty"`
	DoMin        *float64 `json:"do_min,omitempty"`
	TdsMax       *float64 `json:"tds_max,omitempty"`
	AmmoniaMax   *float64 `json:"ammonia_max,omitempty"`
	SalinitasMin *float64 `json:"salinitas_min,omitempty"`
	SalinitasMax *float64 `json:"salinitas_max,omitempty"`
}

// ClaimDeviceRequest 用户按 UID 认领设备
type ClaimDeviceRequest struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// UpdateDeviceRequest 设备更新（空字段不序列化）
type UpdateDeviceRequest struct {
	Name               string `json:"name,omitempty"`
	ConnectionInterval int    `json:"connection_interval,omitempty"`
}
