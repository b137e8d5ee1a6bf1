package domain

// Tambak 养殖场（一个场包含多个池塘）
type Tambak struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	Province        string `json:"province"`
	City            string `json:"city"`
	District        string `json:"district"`
	Village         string `json:"village"`
	Address         string `json:"address"`
	CultivationType string `json:"cultivation_type"`
}

// CreateTambakRequest 创建养殖场
type CreateTambakRequest struct {
	Name            string `json:"name"`
	Country         string `json:"country"`
	Province        string `json:"province"`
	City            string `json:"city"`
	District        string `json:"district"`
	Village         string `json:"village"`
	Address         string `json:"address"`
	CultivationType string `json:"cultivation_type"`
}

// Kolam 池塘（属于某个 tambak，可绑定一台设备）
type Kolam struct {
	ID        int     `json:"id"`
	Nama      string  `json:"nama"`
	Tipe      string  `json:"tipe"`
	Panjang   float64 `json:"panjang"`
	Lebar     float64 `json:"lebar"`
	Kedalaman float64 `json:"kedalaman"`
	Komoditas string  `json:"komoditas"`
	TambakID  int     `json:"tambak_id"`
	DeviceID  *int    `json:"device_id,omitempty"`
}

// CreateKolamRequest 创建池塘
type CreateKolamRequest struct {
	Nama      string  `json:"nama"`
	Tipe      string  `json:"tipe"`
	Panjang   float64 `json:"panjang"`
	Lebar     float64 `json:"lebar"`
	Kedalaman float64 `json:"kedalaman"`
	Komoditas string  `json:"komoditas"`
	TambakID  int     `json:"tambak_id"`
	DeviceID  int     `json:"device_id"`
}

// UpdateKolamRequest 更新池塘（DeviceID 为指针以支持显式解绑 null）
type UpdateKolamRequest struct {
	Nama      string  `json:"nama,omitempty"`
	Tipe      string  `json:"tipe,omitempty"`
	Panjang   float64 `json:"panjang,omitempty"`
	Lebar     float64 `json:"lebar,omitempty"`
	Kedalaman float64 `json:"kedalaman,omitempty"`
	Komoditas string  `json:"komoditas,omitempty"`
	DeviceID  *int    `json:"device_id"`
}
