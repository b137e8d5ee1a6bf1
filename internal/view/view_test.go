package view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/config"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/session"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/store"
)

// backend 记录每个路径命中次数的假后端
type backend struct {
	mux  *http.ServeMux
	mu   sync.Mutex
	hits map[string]int
}

func newBackend(role string) *backend {
	b := &backend{mux: http.NewServeMux(), hits: make(map[string]int)}
	b.handle("/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 1, "name": "Ana", "email": "ana@aquanotes.io", "role": role})
	})
	return b
}

func (b *backend) handle(path string, fn http.HandlerFunc) {
	b.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[path]++
		b.mu.Unlock()
		fn(w, r)
	})
}

func (b *backend) hitCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newTestDeps wires the page dependencies against the fake backend with
// a token already on disk, so RequireAuth resolves without a login call.
func newTestDeps(t *testing.T, b *backend) Deps {
	t.Helper()
	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)

	files, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, files.Set(store.KeyToken, "tok123"))

	logger := zap.NewNop()
	cache := querycache.New(store.NewMemoryKV(), time.Minute, logger)
	sess := session.New(files, cache, logger)
	client := api.NewClient(srv.URL, 5*time.Second, sess, logger)
	sess.AttachClient(client)

	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.TimeoutSeconds = 5
	cfg.DownloadDir = t.TempDir()

	return Deps{Client: client, Cache: cache, Session: sess, Config: cfg, Logger: logger}
}

func TestAdminScheduleConvertsLocalToUTC(t *testing.T) {
	ctx := context.Background()
	b := newBackend("admin")

	var gotBody map[string]any
	b.handle("/admin/devices/5/schedule", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, map[string]any{"id": 5, "uid": "AQN-5"})
	})
	deps := newTestDeps(t, b)
	page := NewDevicesPage(deps)

	local := "2026-09-01T21:30"
	require.NoError(t, page.AdminSchedule(ctx, 5, local))

	parsed, err := time.ParseInLocation(scheduleLayout, local, time.Local)
	require.NoError(t, err)
	require.Equal(t, parsed.UTC().Format(time.RFC3339), gotBody["deactivate_at"])

	// clearing the schedule submits an explicit null
	require.NoError(t, page.AdminSchedule(ctx, 5, ""))
	val, present := gotBody["deactivate_at"]
	require.True(t, present)
	require.Nil(t, val)
}

func TestAdminScheduleRejectsBadInput(t *testing.T) {
	b := newBackend("admin")
	deps := newTestDeps(t, b)
	page := NewDevicesPage(deps)

	err := page.AdminSchedule(context.Background(), 5, "tomorrow at noon")
	require.Error(t, err)
	require.Equal(t, 0, b.hitCount("/admin/devices/5/schedule"))
}

func TestAdminActionsForbiddenForOperator(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	deps := newTestDeps(t, b)
	page := NewDevicesPage(deps)

	require.ErrorIs(t, page.AdminActivate(ctx, 1), session.ErrForbidden)
	require.ErrorIs(t, page.AdminSchedule(ctx, 1, ""), session.ErrForbidden)

	_, err := NewUsersPage(deps).Load(ctx, UsersParams{})
	require.ErrorIs(t, err, session.ErrForbidden)
}

func TestMarkReadForcesRefetch(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	b.handle("/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 9, "message": "pH high", "is_read": false}})
	})
	b.handle("/notifications/9/read", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	b.handle("/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 3)
	})
	deps := newTestDeps(t, b)
	page := NewAlertsPage(deps)

	loadUnread := func() int {
		n, err := querycache.Fetch(ctx, deps.Cache, "notifications-unread", deps.Client.UnreadCount)
		require.NoError(t, err)
		return n
	}

	_, err := page.Load(ctx)
	require.NoError(t, err)
	_, err = page.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, b.hitCount("/notifications"), "second load must come from cache")

	require.Equal(t, 3, loadUnread())
	loadUnread()
	require.Equal(t, 1, b.hitCount("/notifications/unread-count"))

	require.NoError(t, page.MarkRead(ctx, 9))
	_, err = page.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, b.hitCount("/notifications"), "mark-read must invalidate the list")
	loadUnread()
	require.Equal(t, 2, b.hitCount("/notifications/unread-count"), "mark-read must invalidate the unread count")
}

func TestAlertsPageAdminNotice(t *testing.T) {
	b := newBackend("admin")
	deps := newTestDeps(t, b)

	v, err := NewAlertsPage(deps).Load(context.Background())
	require.NoError(t, err)
	require.True(t, v.AdminNotice)
	require.Empty(t, v.Notifications)
}

func TestPondsDefaultsToFirstTambak(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	b.handle("/tambak", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 3, "name": "Tambak Utara"},
			{"id": 7, "name": "Tambak Selatan"},
		})
	})
	b.handle("/kolam", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "3", r.URL.Query().Get("tambak_id"))
		writeJSON(w, []map[string]any{{"id": 11, "nama": "Kolam A", "tambak_id": 3}})
	})
	b.handle("/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 2, "uid": "AQN-2", "name": "Sensor A"}})
	})
	deps := newTestDeps(t, b)

	v, err := NewPondsPage(deps).Load(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 3, v.ActiveTambakID)
	require.Len(t, v.Kolam, 1)
	require.Equal(t, []int{2}, v.DeviceIDs)
}

func TestDeleteKolamWithoutTambakInvalidatesAllKolam(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	b.handle("/tambak", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 3, "name": "Tambak Utara"}})
	})
	b.handle("/kolam", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 11, "nama": "Kolam A", "tambak_id": 3}})
	})
	b.handle("/kolam/11", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	b.handle("/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{})
	})
	deps := newTestDeps(t, b)
	page := NewPondsPage(deps)

	_, err := page.Load(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, b.hitCount("/kolam"))

	// caller does not know which tambak owns the kolam
	require.NoError(t, page.DeleteKolam(ctx, 11, 0))

	_, err = page.Load(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 2, b.hitCount("/kolam"), "delete without a tambak id must still drop the cached list")
}

func domainCreateTambak(name string) domain.CreateTambakRequest {
	return domain.CreateTambakRequest{
		Name:            name,
		Country:         "Indonesia",
		Province:        "Jawa Timur",
		City:            "Sidoarjo",
		District:        "Jabon",
		Village:         "Kupang",
		Address:         "Jl. Tambak 1",
		CultivationType: "udang",
	}
}

func TestCreateTambakValidatesAllFields(t *testing.T) {
	b := newBackend("operator")
	deps := newTestDeps(t, b)

	_, err := NewPondsPage(deps).CreateTambak(context.Background(), domainCreateTambak(""))
	require.Error(t, err)
	require.Equal(t, 0, b.hitCount("/tambak"))
}

func TestReadingsPagination(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	b.handle("/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 4, "uid": "AQN-4", "name": "Sensor B"}})
	})
	b.handle("/sensor", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "AQN-4", q.Get("uid"))
		require.Equal(t, "25", q.Get("skip"), "page 2 starts at row 25")
		require.Equal(t, "25", q.Get("limit"))
		w.Header().Set("X-Total-Count", "60")
		writeJSON(w, []map[string]any{{"timestamp": "2026-08-01T06:00:00Z", "suhu": 28.1}})
	})
	deps := newTestDeps(t, b)

	v, err := NewReadingsPage(deps).Load(ctx, ReadingsParams{UID: "AQN-4", Page: 2, SortDir: "desc"})
	require.NoError(t, err)
	require.Equal(t, 60, v.Total)
	require.Equal(t, 2, v.Page)
	require.Equal(t, 3, v.TotalPages)
	require.Len(t, v.Rows, 1)
}

func TestReadingsWithoutDeviceOnlyListsOptions(t *testing.T) {
	b := newBackend("operator")
	b.handle("/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 4, "uid": "AQN-4", "name": "Sensor B"}})
	})
	deps := newTestDeps(t, b)

	v, err := NewReadingsPage(deps).Load(context.Background(), ReadingsParams{})
	require.NoError(t, err)
	require.Len(t, v.Devices, 1)
	require.Empty(t, v.Rows)
	require.Equal(t, 0, b.hitCount("/sensor"))
}

func TestExportCSVRequiresDateRange(t *testing.T) {
	b := newBackend("operator")
	deps := newTestDeps(t, b)

	_, err := NewReadingsPage(deps).ExportCSV(context.Background(), ReadingsParams{UID: "AQN-4"})
	require.Error(t, err)
}

func TestDashboardSplitsByRole(t *testing.T) {
	ctx := context.Background()

	admin := newBackend("admin")
	admin.handle("/admin/overview", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"total_users": 12, "online_devices": 5, "database_ok": true})
	})
	v, err := NewDashboardPage(newTestDeps(t, admin)).Load(ctx)
	require.NoError(t, err)
	require.Nil(t, v.Operator)
	require.Equal(t, 12, v.Admin.Overview.TotalUsers)

	op := newBackend("operator")
	op.handle("/devices/status/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"online": 2, "offline": 1})
	})
	op.handle("/tambak", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 1, "name": "Tambak Utara"}})
	})
	op.handle("/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 4)
	})
	op.handle("/monitoring", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "12", r.URL.Query().Get("last_n"))
		writeJSON(w, map[string]any{"kolam_list": []map[string]any{{
			"kolam_id": 1, "nama": "Kolam A",
			"devices": []map[string]any{{
				"device_id": 2, "uid": "AQN-2",
				"historical_data": []map[string]any{
					{"timestamp": "2026-08-01T06:00:00Z", "suhu": 28.1, "ph": 7.2, "do": 5.0},
				},
			}},
		}}})
	})
	v, err = NewDashboardPage(newTestDeps(t, op)).Load(ctx)
	require.NoError(t, err)
	require.Nil(t, v.Admin)
	require.Equal(t, 4, v.Operator.UnreadAlerts)
	require.Len(t, v.Operator.Trend, 1)
	require.InDelta(t, 28.1, v.Operator.Trend[0].Suhu, 0.001)
}

func TestUpdateThresholdsRejectsInvertedRange(t *testing.T) {
	b := newBackend("operator")
	deps := newTestDeps(t, b)
	page := NewDevicesPage(deps)

	min, max := 30.0, 24.0
	_, err := page.UpdateThresholds(context.Background(), 3, domain.DeviceThreshold{TempMin: &min, TempMax: &max})
	require.Error(t, err)
	require.Equal(t, 0, b.hitCount("/devices/3/thresholds"))
}

func TestUpdateThresholdsRefreshesCachedView(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	b.handle("/devices/3/thresholds", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"device_id": 3, "temp_min": 24.0, "temp_max": 32.0})
	})
	deps := newTestDeps(t, b)
	page := NewDevicesPage(deps)

	_, err := page.Thresholds(ctx, 3)
	require.NoError(t, err)
	_, err = page.Thresholds(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 1, b.hitCount("/devices/3/thresholds"))

	min := 25.0
	_, err = page.UpdateThresholds(ctx, 3, domain.DeviceThreshold{TempMin: &min})
	require.NoError(t, err)

	_, err = page.Thresholds(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 3, b.hitCount("/devices/3/thresholds"), "GET, PUT, then refetched GET")
}

func TestExportXLSXWritesSnapshot(t *testing.T) {
	ctx := context.Background()
	b := newBackend("operator")
	b.handle("/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 4, "uid": "AQN-4", "name": "Sensor B"}})
	})
	b.handle("/sensor", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Total-Count", "1")
		writeJSON(w, []map[string]any{{"timestamp": "2026-08-01T06:00:00Z", "suhu": 28.1, "ph": 7.2}})
	})
	deps := newTestDeps(t, b)

	path, err := NewReadingsPage(deps).ExportXLSX(ctx, ReadingsParams{UID: "AQN-4"})
	require.NoError(t, err)
	require.FileExists(t, path)
}
