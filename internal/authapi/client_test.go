package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lacquer/internal/domain"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])
		require.Equal(t, "password123", body["password"])

		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  "acc",
			RefreshToken: "ref",
			TokenType:    "bearer",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	tokens, err := client.Login(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.AccessToken)
	assert.Equal(t, "ref", tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
}

func TestClient_LoginAuthErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	require.True(t, domain.IsAuthError(err))

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "Incorrect email or password", authErr.Detail)
}

func TestClient_ErrorWithoutDetailFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Login(context.Background(), "a@b.com", "password123")
	require.Error(t, err)

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), authErr.Detail)
}

func TestClient_MeSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/me", r.URL.Path)
		require.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.User{ID: 7, Email: "a@b.com", Username: "ava"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	user, err := client.Me(context.Background(), "acc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Login(context.Background(), "a@b.com", "password123")
	require.Error(t, err)
	assert.True(t, domain.IsNetworkError(err))
}

func TestClient_MeRetriesOnceOnTransportFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Kill the connection so the client sees a transport error.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		json.NewEncoder(w).Encode(domain.User{ID: 7, Email: "a@b.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	user, err := client.Me(context.Background(), "acc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, int64(2), calls.Load())
}

func TestClient_MeUsesRedisCache(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(domain.User{ID: 7, Email: "a@b.com"})
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	client := NewClient(srv.URL, 5*time.Second)
	client.UseRedisCache(rc, time.Minute)

	ctx := context.Background()
	_, err := client.Me(ctx, "acc")
	require.NoError(t, err)
	_, err = client.Me(ctx, "acc")
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
}

func TestClient_Register(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/register", r.URL.Path)

		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.User{ID: 1, Email: req.Email, Username: req.Username})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	user, err := client.Register(context.Background(), RegisterRequest{
		Email:    "new@b.com",
		Username: "new",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", user.Email)
}
