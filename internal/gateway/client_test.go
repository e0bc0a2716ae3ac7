package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	})

	var out map[string]string
	if err := client.WithToken("t1").Get(context.Background(), "/employees", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Fatalf("expected Authorization: Bearer t1, got %q", gotAuth)
	}
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	var hadAuth bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	})

	if err := client.Get(context.Background(), "/items/today", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if hadAuth {
		t.Fatalf("anonymous call must not carry an Authorization header")
	}
}

func TestClient_WithTokenDoesNotMutateReceiver(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})

	authed := client.WithToken("t1")
	if err := authed.Get(context.Background(), "/a", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	// The original client stays anonymous: a logout clearing the session
	// never rewrites credentials on requests already built.
	if err := client.Get(context.Background(), "/b", nil); err != nil {
		t.Fatalf("get: %v", err)
	}

	if calls[0] != "Bearer t1" || calls[1] != "" {
		t.Fatalf("unexpected auth headers: %v", calls)
	}
}

func TestClient_ErrorEnvelopeBecomesRemoteError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})

	err := client.Post(context.Background(), "/auth/login", map[string]string{}, nil)
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != http.StatusUnauthorized || re.Message != "Invalid credentials" {
		t.Fatalf("unexpected remote error: %+v", re)
	}
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := client.Get(context.Background(), "/transactions", nil)
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Message != "" {
		t.Fatalf("expected empty message for non-JSON body, got %q", re.Message)
	}
	if got := domain.ErrorMessage(err, "Failed to fetch transactions"); got != "Failed to fetch transactions" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := client.Get(context.Background(), "/employees", nil)
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var re *domain.RemoteError
	if errors.As(err, &re) {
		t.Fatalf("transport failure must not look like a server response")
	}
}

func TestClient_Login_DecodesFlatPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("login must be anonymous")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "t1",
			"name":  "Ann",
			"email": "admin@x.com",
			"role":  "admin",
		})
	})

	// Even a client holding a stale credential logs in anonymously.
	stale := client.WithToken("old").(*Client)
	payload, err := stale.Login(context.Background(), "admin@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if payload.Token != "t1" || payload.User.Name != "Ann" || payload.User.Role != "admin" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestClient_Login_MissingTokenIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "Ann", "role": "admin"})
	})

	if _, err := client.Login(context.Background(), "a@x.com", "pw"); err == nil {
		t.Fatalf("expected error for tokenless response")
	}
}

func TestClient_Register_EmployeeIDOnlyForEmployees(t *testing.T) {
	var bodies []map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		_ = json.NewEncoder(w).Encode(map[string]any{"token": "t", "role": body["role"]})
	})

	_, err := client.Register(context.Background(), ports.RegisterInput{
		Name: "Bo", Email: "bo@x.com", Password: "secret1", Role: "employee", EmployeeID: "E-1",
	})
	if err != nil {
		t.Fatalf("register employee: %v", err)
	}
	_, err = client.Register(context.Background(), ports.RegisterInput{
		Name: "Ad", Email: "ad@x.com", Password: "secret1", Role: "admin", EmployeeID: "ignored",
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}

	if bodies[0]["employeeId"] != "E-1" {
		t.Fatalf("employee registration should carry employeeId: %v", bodies[0])
	}
	if _, ok := bodies[1]["employeeId"]; ok {
		t.Fatalf("admin registration must not carry employeeId: %v", bodies[1])
	}
}

func TestClient_Ping(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// An error status still proves reachability.
		w.WriteHeader(http.StatusNotFound)
	})

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("localhost:5000/api", zerolog.Nop()); err == nil {
		t.Fatalf("expected error for non-absolute base url")
	}
}
