package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// SensorExportHeader 读数导出表头
var SensorExportHeader = []string{
	"Timestamp",
	"Temp (C)",
	"pH",
	"DO (mg/L)",
	"TDS (ppm)",
	"Ammonia (mg/L)",
	"Salinity (ppt)",
}

// WriteSensorXLSX 把一批读数写成 .xlsx 文件（本地快照导出，
// 与服务端 CSV 导出并存）。返回写入的完整路径。
func WriteSensorXLSX(dir, deviceUID string, rows []domain.SensorData) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sensor Data"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, title := range SensorExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{row.Timestamp, row.Suhu, row.Ph, row.Do, row.Tds, row.Ammonia, row.Salinitas}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	dest := filepath.Join(dir, fmt.Sprintf("sensor_data_%s.xlsx", deviceUID))
	if err := f.SaveAs(dest); err != nil {
		return "", fmt.Errorf("failed to save xlsx: %w", err)
	}
	return dest, nil
}
