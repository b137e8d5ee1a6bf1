package domain

// Notification 服务端生成的阈值告警记录（客户端只读 + 标记已读）
type Notification struct {
	ID           int     `json:"id"`
	DeviceName   string  `json:"device_name"`
	Message      string  `json:"message"`
	Parameter    string  `json:"parameter"`
	CurrentValue float64 `json:"current_value"`
	IsRead       bool    `json:"is_read"`
	Timestamp    string  `json:"timestamp"`
}

// AdminOverview GET /admin/overview 聚合统计
type AdminOverview struct {
	TotalUsers         int  `json:"total_users"`
	TotalDevices       int  `json:"total_devices"`
	TotalTambak        int  `json:"total_tambak"`
	TotalKolam         int  `json:"total_kolam"`
	TotalNotifications int  `json:"total_notifications"`
	OnlineDevices      int  `json:"online_devices"`
	OfflineDevices     int  `json:"offline_devices"`
	MaintenanceDevices int  `json:"maintenance_devices"`
	InactiveDevices    int  `json:"inactive_devices"`
	DatabaseOK         bool `json:"database_ok"`
}
