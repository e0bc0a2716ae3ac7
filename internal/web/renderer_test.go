package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
)

type testPage struct {
	Title   string
	Session domain.Session
	Error   string
	Success string
}

func render(t *testing.T, name string, data any) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	var sb strings.Builder
	if err := r.Render(&sb, name, data, c); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return sb.String()
}

func TestRenderer_ParsesAllTemplates(t *testing.T) {
	if _, err := NewRenderer(); err != nil {
		t.Fatalf("template set does not parse: %v", err)
	}
}

func TestRenderer_LoginScreen(t *testing.T) {
	out := render(t, "login.html", struct {
		testPage
		Form struct{ Email string }
	}{testPage: testPage{Title: "Sign in"}})

	if !strings.Contains(out, `action="/login"`) {
		t.Fatalf("login form missing:\n%s", out)
	}
	if strings.Contains(out, `class="alert error"`) {
		t.Fatalf("unexpected flash on a clean render:\n%s", out)
	}
}

func TestRenderer_FlashMessages(t *testing.T) {
	out := render(t, "login.html", struct {
		testPage
		Form struct{ Email string }
	}{testPage: testPage{Title: "Sign in", Error: "Invalid credentials"}})

	if !strings.Contains(out, "Invalid credentials") {
		t.Fatalf("error flash missing:\n%s", out)
	}
}

func TestRenderer_MenuFormatsMoney(t *testing.T) {
	sess := domain.Session{
		User:  &domain.User{Name: "Bo", Role: "employee"},
		Token: "t1",
	}
	out := render(t, "employee_menu.html", struct {
		testPage
		Items []struct {
			ID       string
			Name     string
			Price    float64
			Quantity int
		}
	}{
		testPage: testPage{Title: "Today's Menu", Session: sess},
		Items: []struct {
			ID       string
			Name     string
			Price    float64
			Quantity int
		}{{ID: "i1", Name: "Masala Dosa", Price: 45, Quantity: 3}},
	})

	if !strings.Contains(out, "Masala Dosa") || !strings.Contains(out, "₹45.00") {
		t.Fatalf("menu row missing or unformatted:\n%s", out)
	}
	// Authenticated employees see their own navigation.
	if !strings.Contains(out, "/employee/passbook") {
		t.Fatalf("employee nav missing:\n%s", out)
	}
}

func TestRenderer_TransactionLedger(t *testing.T) {
	sess := domain.Session{
		User:  &domain.User{Name: "Ann", Role: "admin"},
		Token: "t1",
	}
	type party struct{ Name, Email string }
	out := render(t, "admin_transactions.html", struct {
		testPage
		Transactions []struct {
			CreatedAt   string
			Employee    *party
			Type        string
			Amount      float64
			Description string
		}
	}{
		testPage: testPage{Title: "Transaction History", Session: sess},
		Transactions: []struct {
			CreatedAt   string
			Employee    *party
			Type        string
			Amount      float64
			Description string
		}{{
			CreatedAt:   "2026-03-05T09:30:00Z",
			Employee:    &party{Name: "Bo", Email: "bo@x.com"},
			Type:        "credit",
			Amount:      100,
			Description: "Top up",
		}},
	})

	if !strings.Contains(out, "Credit") {
		t.Fatalf("type tag not capitalized:\n%s", out)
	}
	if !strings.Contains(out, "₹100.00") || !strings.Contains(out, "bo@x.com") {
		t.Fatalf("ledger row incomplete:\n%s", out)
	}
}

func TestRenderer_ErrorScreen(t *testing.T) {
	out := render(t, "error.html", struct {
		Title   string
		Status  int
		Message string
	}{Title: "Error", Status: 502, Message: "upstream unavailable"})

	if !strings.Contains(out, "502") || !strings.Contains(out, "upstream unavailable") {
		t.Fatalf("error details missing:\n%s", out)
	}
	if !strings.Contains(out, "/login") {
		t.Fatalf("error screen should offer a way back to sign in:\n%s", out)
	}
}
