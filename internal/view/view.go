// Package view 把控制台的每个页面实现为一个组合器：
// Load 返回类型化的视图模型，变更方法在成功后失效对应的查询键。
package view

import (
	"time"

	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/config"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/session"
)

// PageSize 分页资源的固定页大小
const PageSize = 25

// Deps 页面组合器的公共依赖
type Deps struct {
	Client  *api.Client
	Cache   *querycache.Cache
	Session *session.Session
	Config  *config.Config
	Logger  *zap.Logger
}

// ChartPoint 折线图的一个点（时间 + 三个主要指标）
type ChartPoint struct {
	Timestamp string
	Suhu      float64
	Ph        float64
	Do        float64
}

// formatClock 把后端时间戳格式化成本地时刻（图表横轴用）
func formatClock(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("15:04:05")
}

// FormatTimestamp 表格里的完整本地时间；无法解析时显示 "-"
func FormatTimestamp(raw *string) string {
	if raw == nil || *raw == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
