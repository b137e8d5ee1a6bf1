package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/store"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/validate"
)

// newTestSession wires a session against an httptest backend, the way
// main does it: session first, client second, AttachClient last.
func newTestSession(t *testing.T, handler http.Handler) (*Session, *store.FileStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	files, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	cache := querycache.New(store.NewMemoryKV(), time.Minute, zap.NewNop())
	sess := New(files, cache, zap.NewNop())
	sess.AttachClient(api.NewClient(srv.URL, 5*time.Second, sess, zap.NewNop()))
	return sess, files
}

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok123","token_type":"bearer"}`)
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"invalid token"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"name":"Ana","email":"ana@aquanotes.io","role":"admin"}`)
	})
	mux.HandleFunc("/users/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestLoginResolvesUserAndPersistsToken(t *testing.T) {
	ctx := context.Background()
	sess, files := newTestSession(t, authBackend(t))

	require.Equal(t, StateUnauthenticated, sess.State())

	user, err := sess.Login(ctx, "ana@aquanotes.io", "secret")
	require.NoError(t, err)
	require.Equal(t, "Ana", user.Name)
	require.Equal(t, StateAuthenticated, sess.State())

	stored, err := files.Get(store.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "tok123", stored)
}

func TestLoginValidatesInput(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t, authBackend(t))

	_, err := sess.Login(ctx, "not-an-email", "secret")
	var vErr *validate.Error
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "email")

	_, err = sess.Login(ctx, "ana@aquanotes.io", "")
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "password")
}

func TestSessionRestoredFromDisk(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(authBackend(t))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	files, err := store.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, files.Set(store.KeyToken, "tok123"))

	cache := querycache.New(store.NewMemoryKV(), time.Minute, zap.NewNop())
	sess := New(files, cache, zap.NewNop())
	sess.AttachClient(api.NewClient(srv.URL, 5*time.Second, sess, zap.NewNop()))

	require.Equal(t, StateResolving, sess.State())
	user, err := sess.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "ana@aquanotes.io", user.Email)
	require.Equal(t, StateAuthenticated, sess.State())
}

func TestStaleTokenDropsToUnauthenticated(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(authBackend(t))
	t.Cleanup(srv.Close)

	files, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, files.Set(store.KeyToken, "expired"))

	cache := querycache.New(store.NewMemoryKV(), time.Minute, zap.NewNop())
	sess := New(files, cache, zap.NewNop())
	sess.AttachClient(api.NewClient(srv.URL, 5*time.Second, sess, zap.NewNop()))

	_, err = sess.CurrentUser(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Equal(t, StateUnauthenticated, sess.State())

	_, err = files.Get(store.KeyToken)
	require.ErrorIs(t, err, store.ErrMiss, "stale token must be purged from disk")
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	sess, files := newTestSession(t, authBackend(t))

	_, err := sess.Login(ctx, "ana@aquanotes.io", "secret")
	require.NoError(t, err)

	sess.Logout(ctx)
	require.Equal(t, StateUnauthenticated, sess.State())
	_, err = files.Get(store.KeyToken)
	require.ErrorIs(t, err, store.ErrMiss)

	_, err = sess.CurrentUser(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogoutBackendFailureStillClearsSession(t *testing.T) {
	ctx := context.Background()
	base := authBackend(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/logout" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"detail":"backend down"}`)
			return
		}
		base.ServeHTTP(w, r)
	})
	sess, files := newTestSession(t, handler)

	_, err := sess.Login(ctx, "ana@aquanotes.io", "secret")
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, sess.State())

	// the failed endpoint call is swallowed, the session is cleared anyway
	sess.Logout(ctx)
	require.Equal(t, StateUnauthenticated, sess.State())
	_, err = files.Get(store.KeyToken)
	require.ErrorIs(t, err, store.ErrMiss)

	_, err = sess.CurrentUser(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRequireRole(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t, authBackend(t))

	_, err := sess.RequireAuth(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = sess.Login(ctx, "ana@aquanotes.io", "secret")
	require.NoError(t, err)

	user, err := sess.RequireRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, user.Role)

	_, err = sess.RequireRole(ctx, domain.RoleOperator, domain.RoleViewer)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestThemeToggleRoundTrip(t *testing.T) {
	sess, files := newTestSession(t, authBackend(t))

	require.Equal(t, ThemeDark, sess.Theme())
	require.Equal(t, ThemeLight, sess.ToggleTheme())
	require.Equal(t, ThemeLight, sess.Theme())
	require.Equal(t, ThemeDark, sess.ToggleTheme())

	stored, err := files.Get(store.KeyTheme)
	require.NoError(t, err)
	require.Equal(t, ThemeDark, stored)
}

func TestAdminAPIKeyPersisted(t *testing.T) {
	sess, _ := newTestSession(t, authBackend(t))

	require.Empty(t, sess.AdminAPIKey())
	sess.SetAdminAPIKey("key-abc")
	require.Equal(t, "key-abc", sess.AdminAPIKey())
	sess.SetAdminAPIKey("")
	require.Empty(t, sess.AdminAPIKey())
}
