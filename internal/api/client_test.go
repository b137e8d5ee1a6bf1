package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
)

// fakeTokens 记录 ClearToken 调用的测试 TokenSource
type fakeTokens struct {
	token   string
	cleared bool
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) ClearToken()   { f.cleared = true; f.token = "" }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, tokens, zap.NewNop()), srv
}

func TestLoginSendsCredentialsAndReturnsToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin@aquanotes.io", body["email"])
		require.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok123","token_type":"bearer"}`)
	})

	client, _ := newTestClient(t, handler, &fakeTokens{})
	out, err := client.Login(context.Background(), "admin@aquanotes.io", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok123", out.AccessToken)
	require.Equal(t, "bearer", out.TokenType)
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"name":"Ana","email":"ana@x.io","role":"admin"}`)
	})

	client, _ := newTestClient(t, handler, &fakeTokens{token: "tok123"})
	_, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Could not validate credentials"}`)
	})

	tokens := &fakeTokens{token: "stale"}
	client, _ := newTestClient(t, handler, tokens)
	_, err := client.Me(context.Background())
	require.Error(t, err)
	require.True(t, tokens.cleared)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
	require.Equal(t, "Could not validate credentials", apiErr.Message)
}

func TestErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantMessage string
	}{
		{"json detail", "application/json", `{"detail":"tambak not found"}`, "tambak not found"},
		{"json without detail", "application/json", `{"errors":["x"]}`, "request failed"},
		{"json non-string detail", "application/json", `{"detail":[{"loc":["body"]}]}`, "request failed"},
		{"plain text", "text/plain", "upstream timeout", "upstream timeout"},
		{"empty text", "text/plain", "", "request failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, tc.body)
			})
			client, _ := newTestClient(t, handler, &fakeTokens{})
			_, err := client.Me(context.Background())

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tc.wantMessage, apiErr.Message)
			require.Equal(t, http.StatusBadRequest, apiErr.Status)
		})
	}
}

func TestNoContentSkipsDecode(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	client, _ := newTestClient(t, handler, &fakeTokens{token: "t"})
	require.NoError(t, client.DeleteUser(context.Background(), 7))
}

func TestListUsersPagination(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "0", q.Get("skip"))
		require.Equal(t, "25", q.Get("limit"))
		require.Equal(t, "budi", q.Get("search"))
		require.False(t, q.Has("role"), "empty filter must be omitted")
		require.False(t, q.Has("sort_by"), "empty sort must be omitted")

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Total-Count", "137")
		users := make([]domain.User, 25)
		for i := range users {
			users[i] = domain.User{ID: i + 1, Name: "u", Email: "u@x.io", Role: domain.RoleOperator}
		}
		require.NoError(t, json.NewEncoder(w).Encode(users))
	})

	client, _ := newTestClient(t, handler, &fakeTokens{token: "t"})
	skip, limit := 0, 25
	paged, err := client.ListUsers(context.Background(), ListUsersParams{
		Skip: &skip, Limit: &limit, Search: "budi", SortDir: "asc",
	})
	require.NoError(t, err)
	require.Len(t, paged.Data, 25)
	require.True(t, paged.HasTotal)
	require.Equal(t, 137, paged.Total)
	require.Equal(t, 6, paged.TotalPages(25))
}

func TestMissingTotalCountHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})
	client, _ := newTestClient(t, handler, &fakeTokens{token: "t"})
	paged, err := client.ListUsers(context.Background(), ListUsersParams{})
	require.NoError(t, err)
	require.False(t, paged.HasTotal)
	require.Equal(t, 1, paged.TotalPages(25))
}
