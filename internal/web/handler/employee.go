package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
	"github.com/canteen-system/canteen-console/internal/web/middleware"
)

// EmployeeHandler serves the employee screens: dashboard, profile, today's
// menu, and the passbook.
type EmployeeHandler struct {
	api ports.APIClient
}

func NewEmployeeHandler(api ports.APIClient) *EmployeeHandler {
	return &EmployeeHandler{api: api}
}

func (h *EmployeeHandler) client(c echo.Context) ports.APIClient {
	return h.api.WithToken(middleware.CurrentSession(c).Token)
}

// --- Dashboard ---

type employeeMetrics struct {
	Balance    float64 `json:"balance"`
	TotalSpent float64 `json:"totalSpent"`
	Purchases  int     `json:"purchases"`
}

type employeeDashboardPage struct {
	Page
	Metrics employeeMetrics
	Recent  []Transaction
}

const recentTransactionLimit = 5

func (h *EmployeeHandler) Dashboard(c echo.Context) error {
	page := employeeDashboardPage{Page: newPage(c, "My Dashboard")}

	ctx := c.Request().Context()
	api := h.client(c)
	if err := api.Get(ctx, "/dashboard/employee-metrics", &page.Metrics); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch dashboard metrics")
	}

	var all []Transaction
	if err := api.Get(ctx, "/transactions/me", &all); err != nil {
		if page.Error == "" {
			page.Error = domain.ErrorMessage(err, "Failed to fetch transactions")
		}
	} else if len(all) > recentTransactionLimit {
		page.Recent = all[:recentTransactionLimit]
	} else {
		page.Recent = all
	}
	return c.Render(http.StatusOK, "employee_dashboard.html", page)
}

// --- Profile ---

type profileForm struct {
	Name string `form:"name" validate:"required"`
}

type passwordForm struct {
	CurrentPassword string `form:"currentPassword" validate:"required"`
	NewPassword     string `form:"newPassword"     validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type selfCreditForm struct {
	Amount float64 `form:"amount" validate:"required,gt=0"`
}

type employeeProfilePage struct {
	Page
	Profile Employee
}

func (h *EmployeeHandler) Profile(c echo.Context) error {
	return h.renderProfile(c, c.QueryParam("success"), "")
}

func (h *EmployeeHandler) renderProfile(c echo.Context, success, errMsg string) error {
	page := employeeProfilePage{Page: newPage(c, "My Profile")}
	page.Success = success
	page.Error = errMsg

	if err := h.client(c).Get(c.Request().Context(), "/employees/profile", &page.Profile); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch profile")
	}
	return c.Render(http.StatusOK, "employee_profile.html", page)
}

// UpdateProfile handles POST /employee/profile: name change only, the
// email is fixed server-side.
func (h *EmployeeHandler) UpdateProfile(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return h.renderProfile(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderProfile(c, "", err.Error())
	}

	body := map[string]string{"name": form.Name}
	if err := h.client(c).Put(c.Request().Context(), "/employees/profile", body, nil); err != nil {
		return h.renderProfile(c, "", domain.ErrorMessage(err, "Failed to update profile"))
	}
	return flashRedirect(c, "/employee/profile", "Profile updated successfully!")
}

// ChangePassword handles POST /employee/profile/password.
func (h *EmployeeHandler) ChangePassword(c echo.Context) error {
	var form passwordForm
	if err := c.Bind(&form); err != nil {
		return h.renderProfile(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderProfile(c, "", err.Error())
	}

	body := map[string]string{
		"currentPassword": form.CurrentPassword,
		"newPassword":     form.NewPassword,
	}
	if err := h.client(c).Put(c.Request().Context(), "/employees/profile/password", body, nil); err != nil {
		return h.renderProfile(c, "", domain.ErrorMessage(err, "Failed to change password"))
	}
	return flashRedirect(c, "/employee/profile", "Password changed successfully!")
}

// SelfCredit handles POST /employee/profile/credit: the employee tops up
// their own balance.
func (h *EmployeeHandler) SelfCredit(c echo.Context) error {
	var form selfCreditForm
	if err := c.Bind(&form); err != nil {
		return h.renderProfile(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderProfile(c, "", "Enter a valid amount")
	}

	body := map[string]any{"amount": form.Amount}
	if err := h.client(c).Post(c.Request().Context(), "/employees/self-credit", body, nil); err != nil {
		return h.renderProfile(c, "", domain.ErrorMessage(err, "Failed to add money"))
	}
	return flashRedirect(c, "/employee/profile", "Amount added successfully!")
}

// --- Menu ---

type purchaseForm struct {
	ItemID   string `form:"itemId"   validate:"required"`
	Quantity int    `form:"quantity" validate:"required,gte=1"`
}

type employeeMenuPage struct {
	Page
	Items []Item
}

func (h *EmployeeHandler) Menu(c echo.Context) error {
	return h.renderMenu(c, c.QueryParam("success"), "")
}

func (h *EmployeeHandler) renderMenu(c echo.Context, success, errMsg string) error {
	page := employeeMenuPage{Page: newPage(c, "Today's Menu")}
	page.Success = success
	page.Error = errMsg

	if err := h.client(c).Get(c.Request().Context(), "/items/today", &page.Items); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch today's items")
	}
	return c.Render(http.StatusOK, "employee_menu.html", page)
}

// Purchase handles POST /employee/menu/purchase.
func (h *EmployeeHandler) Purchase(c echo.Context) error {
	var form purchaseForm
	if err := c.Bind(&form); err != nil {
		return h.renderMenu(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderMenu(c, "", "Enter a valid quantity")
	}

	body := map[string]any{"itemId": form.ItemID, "quantity": form.Quantity}
	if err := h.client(c).Post(c.Request().Context(), "/purchase/employee", body, nil); err != nil {
		return h.renderMenu(c, "", domain.ErrorMessage(err, "Failed to purchase item"))
	}
	return flashRedirect(c, "/employee/menu", "Purchase successful!")
}

// --- Passbook ---

type employeePassbookPage struct {
	Page
	Transactions []Transaction
}

func (h *EmployeeHandler) Passbook(c echo.Context) error {
	page := employeePassbookPage{Page: newPage(c, "Passbook")}

	if err := h.client(c).Get(c.Request().Context(), "/transactions/me", &page.Transactions); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch transactions")
	}
	return c.Render(http.StatusOK, "employee_passbook.html", page)
}
