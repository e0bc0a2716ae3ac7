package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
)

func employeeContext(e *echo.Echo, method, path string, form url.Values) (echo.Context, *captureRenderer) {
	renderer := e.Renderer.(*captureRenderer)
	c, _ := authedContext(e, method, path, form)
	c.Set("session", domain.Session{
		User:  &domain.User{Name: "Bo", Role: "employee", EmployeeID: "E-1"},
		Token: "t2",
	})
	return c, renderer
}

func TestEmployeeHandler_Dashboard_TruncatesRecentTransactions(t *testing.T) {
	e := echo.New()
	e.Renderer = &captureRenderer{}

	api := newStubAPIClient()
	api.responses["/dashboard/employee-metrics"] = map[string]any{
		"balance": 250.0, "totalSpent": 90.0, "purchases": 12,
	}
	txs := make([]map[string]any, 8)
	for i := range txs {
		txs[i] = map[string]any{"_id": "t", "type": "debit", "amount": 10.0}
	}
	api.responses["/transactions/me"] = txs
	h := NewEmployeeHandler(api)

	c, renderer := employeeContext(e, http.MethodGet, "/employee", nil)
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	page := renderer.data.(employeeDashboardPage)
	if page.Metrics.Balance != 250 || page.Metrics.Purchases != 12 {
		t.Fatalf("unexpected metrics: %+v", page.Metrics)
	}
	if len(page.Recent) != recentTransactionLimit {
		t.Fatalf("expected %d recent transactions, got %d", recentTransactionLimit, len(page.Recent))
	}

	for _, call := range *api.calls {
		if call.Token != "t2" {
			t.Fatalf("expected the session token on every call: %+v", call)
		}
	}
}

func TestEmployeeHandler_Purchase_Success(t *testing.T) {
	e := echo.New()
	e.Renderer = &captureRenderer{}
	e.Validator = NewValidator()

	api := newStubAPIClient()
	h := NewEmployeeHandler(api)

	c, _ := employeeContext(e, http.MethodPost, "/employee/menu/purchase", url.Values{
		"itemId": {"i1"}, "quantity": {"2"},
	})
	if err := h.Purchase(c); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	calls := *api.calls
	if len(calls) != 1 || calls[0].Path != "/purchase/employee" || calls[0].Method != http.MethodPost {
		t.Fatalf("unexpected upstream call: %+v", calls)
	}
	body := calls[0].Body.(map[string]any)
	if body["itemId"] != "i1" || body["quantity"] != 2 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestEmployeeHandler_Purchase_InsufficientBalanceRerenders(t *testing.T) {
	e := echo.New()
	e.Renderer = &captureRenderer{}
	e.Validator = NewValidator()

	api := newStubAPIClient()
	api.errs["/purchase/employee"] = &domain.RemoteError{Status: 400, Message: "Insufficient balance"}
	h := NewEmployeeHandler(api)

	c, renderer := employeeContext(e, http.MethodPost, "/employee/menu/purchase", url.Values{
		"itemId": {"i1"}, "quantity": {"2"},
	})
	if err := h.Purchase(c); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if renderer.name != "employee_menu.html" {
		t.Fatalf("expected menu re-render, got %q", renderer.name)
	}
	page := renderer.data.(employeeMenuPage)
	if page.Error != "Insufficient balance" {
		t.Fatalf("expected upstream message, got %q", page.Error)
	}
}

func TestEmployeeHandler_ChangePassword_MismatchSkipsBackend(t *testing.T) {
	e := echo.New()
	e.Renderer = &captureRenderer{}
	e.Validator = NewValidator()

	api := newStubAPIClient()
	h := NewEmployeeHandler(api)

	c, renderer := employeeContext(e, http.MethodPost, "/employee/profile/password", url.Values{
		"currentPassword": {"old-pass"},
		"newPassword":     {"new-pass"},
		"confirmPassword": {"other-pass"},
	})
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("change password: %v", err)
	}

	page := renderer.data.(employeeProfilePage)
	if page.Error != "passwords do not match" {
		t.Fatalf("expected mismatch message, got %q", page.Error)
	}
	for _, call := range *api.calls {
		if call.Method == http.MethodPut {
			t.Fatalf("mismatched passwords must not reach the backend")
		}
	}
}

func TestEmployeeHandler_UpdateProfile_Success(t *testing.T) {
	e := echo.New()
	e.Renderer = &captureRenderer{}
	e.Validator = NewValidator()

	api := newStubAPIClient()
	h := NewEmployeeHandler(api)

	c, _ := employeeContext(e, http.MethodPost, "/employee/profile", url.Values{
		"name": {"Bo Renamed"},
	})
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	calls := *api.calls
	if len(calls) != 1 || calls[0].Method != http.MethodPut || calls[0].Path != "/employees/profile" {
		t.Fatalf("unexpected upstream call: %+v", calls)
	}
	if body := calls[0].Body.(map[string]string); body["name"] != "Bo Renamed" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestEmployeeHandler_SelfCredit_Success(t *testing.T) {
	e := echo.New()
	e.Renderer = &captureRenderer{}
	e.Validator = NewValidator()

	api := newStubAPIClient()
	h := NewEmployeeHandler(api)

	c, _ := employeeContext(e, http.MethodPost, "/employee/profile/credit", url.Values{
		"amount": {"100"},
	})
	if err := h.SelfCredit(c); err != nil {
		t.Fatalf("self credit: %v", err)
	}

	calls := *api.calls
	if len(calls) != 1 || calls[0].Path != "/employees/self-credit" {
		t.Fatalf("unexpected upstream call: %+v", calls)
	}
	if body := calls[0].Body.(map[string]any); body["amount"] != 100.0 {
		t.Fatalf("unexpected body: %v", body)
	}
}
