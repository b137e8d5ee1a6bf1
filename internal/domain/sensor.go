package domain

// SensorData 单条传感器读数（后端按阈值在其上生成告警）
// 字段名与后端 ingestion 保持一致：suhu=温度, do=溶解氧, salinitas=盐度
type SensorData struct {
	ID        int     `json:"id"`
	Timestamp string  `json:"timestamp"`
	Suhu      float64 `json:"suhu"`
	Ph        float64 `json:"ph"`
	Do        float64 `json:"do"`
	Tds       float64 `json:"tds"`
	Ammonia   float64 `json:"ammonia"`
	Salinitas float64 `json:"salinitas"`
}

// MonitoringDevice monitoring 接口中的设备节点（带近期历史数据）
type MonitoringDevice struct {
	DeviceID       int          `json:"device_id"`
	UID            string       `json:"uid"`
	Name           string       `json:"name"`
	Status         string       `json:"status"`
	HistoricalData []SensorData `json:"historical_data"`
}

// MonitoringKolam monitoring 接口中的池塘节点
type MonitoringKolam struct {
	KolamID int                `json:"kolam_id"`
	Nama    string             `json:"nama"`
	Devices []MonitoringDevice `json:"devices"`
}

// MonitoringResponse GET /monitoring 响应
type MonitoringResponse struct {
	KolamList []MonitoringKolam `json:"kolam_list"`
}
