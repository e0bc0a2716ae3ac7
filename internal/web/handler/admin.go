package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
	"github.com/canteen-system/canteen-console/internal/web/middleware"
)

// AdminHandler serves the admin screens: dashboard metrics, employee
// management, item management, and the transaction ledger. Every screen is
// pure CRUD against the backend through the gateway; mutations follow
// post-redirect-get with the outcome carried as an inline flash.
type AdminHandler struct {
	api ports.APIClient
}

func NewAdminHandler(api ports.APIClient) *AdminHandler {
	return &AdminHandler{api: api}
}

// client binds the gateway to the caller's token for this one request.
func (h *AdminHandler) client(c echo.Context) ports.APIClient {
	return h.api.WithToken(middleware.CurrentSession(c).Token)
}

// flashRedirect sends the browser back to path with a success message.
func flashRedirect(c echo.Context, path, success string) error {
	return c.Redirect(http.StatusSeeOther, path+"?success="+url.QueryEscape(success))
}

// --- Dashboard ---

type adminMetrics struct {
	EmployeeCount      int     `json:"employeeCount"`
	TotalItems         int     `json:"totalItems"`
	TodayItems         int     `json:"todayItems"`
	TotalCredited      float64 `json:"totalCredited"`
	TotalDebited       float64 `json:"totalDebited"`
	CreditTransactions int     `json:"creditTransactions"`
	DebitTransactions  int     `json:"debitTransactions"`
}

// Transactions is the combined count shown on the dashboard card.
func (m adminMetrics) Transactions() int {
	return m.CreditTransactions + m.DebitTransactions
}

type adminDashboardPage struct {
	Page
	Metrics adminMetrics
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	page := adminDashboardPage{Page: newPage(c, "Admin Dashboard")}

	if err := h.client(c).Get(c.Request().Context(), "/dashboard/metrics", &page.Metrics); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch dashboard metrics")
	}
	return c.Render(http.StatusOK, "admin_dashboard.html", page)
}

// --- Employee management ---

type employeeForm struct {
	Name       string `form:"name"       validate:"required"`
	Email      string `form:"email"      validate:"required,email"`
	Password   string `form:"password"   validate:"required"`
	EmployeeID string `form:"employeeId" validate:"required"`
}

type creditForm struct {
	EmployeeID string  `form:"employeeId" validate:"required"`
	Amount     float64 `form:"amount"     validate:"required,gt=0"`
}

type adminEmployeesPage struct {
	Page
	Employees []Employee
}

func (h *AdminHandler) Employees(c echo.Context) error {
	return h.renderEmployees(c, c.QueryParam("success"), "")
}

func (h *AdminHandler) renderEmployees(c echo.Context, success, errMsg string) error {
	page := adminEmployeesPage{Page: newPage(c, "Employee Management")}
	page.Success = success
	page.Error = errMsg

	if err := h.client(c).Get(c.Request().Context(), "/employees", &page.Employees); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch employees")
	}
	return c.Render(http.StatusOK, "admin_employees.html", page)
}

// AddEmployee handles POST /admin/employees.
func (h *AdminHandler) AddEmployee(c echo.Context) error {
	var form employeeForm
	if err := c.Bind(&form); err != nil {
		return h.renderEmployees(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderEmployees(c, "", err.Error())
	}

	body := map[string]string{
		"name":       form.Name,
		"email":      form.Email,
		"password":   form.Password,
		"employeeId": form.EmployeeID,
	}
	if err := h.client(c).Post(c.Request().Context(), "/employees", body, nil); err != nil {
		return h.renderEmployees(c, "", domain.ErrorMessage(err, "Failed to add employee"))
	}
	return flashRedirect(c, "/admin/employees", "Employee added successfully!")
}

// CreditEmployee handles POST /admin/employees/credit.
func (h *AdminHandler) CreditEmployee(c echo.Context) error {
	var form creditForm
	if err := c.Bind(&form); err != nil {
		return h.renderEmployees(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderEmployees(c, "", "Enter a valid positive amount")
	}

	body := map[string]any{"employeeId": form.EmployeeID, "amount": form.Amount}
	if err := h.client(c).Post(c.Request().Context(), "/employees/credit", body, nil); err != nil {
		return h.renderEmployees(c, "", domain.ErrorMessage(err, "Failed to credit amount"))
	}
	return flashRedirect(c, "/admin/employees", "Amount credited successfully!")
}

// --- Item management ---

type itemForm struct {
	Name  string  `form:"name"  validate:"required"`
	Price float64 `form:"price" validate:"gte=0"`
}

type todayForm struct {
	ItemID   string `form:"itemId"   validate:"required"`
	Quantity int    `form:"quantity" validate:"required,gt=0"`
}

type quantityForm struct {
	Quantity int  `form:"quantity" validate:"gte=0"`
	Today    bool `form:"today"`
}

type adminItemsPage struct {
	Page
	MasterItems []Item
	TodayItems  []Item
}

func (h *AdminHandler) Items(c echo.Context) error {
	return h.renderItems(c, c.QueryParam("success"), "")
}

func (h *AdminHandler) renderItems(c echo.Context, success, errMsg string) error {
	page := adminItemsPage{Page: newPage(c, "Item Management")}
	page.Success = success
	page.Error = errMsg

	ctx := c.Request().Context()
	api := h.client(c)
	if err := api.Get(ctx, "/items/master", &page.MasterItems); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch items")
	}
	if err := api.Get(ctx, "/items/today", &page.TodayItems); err != nil && page.Error == "" {
		page.Error = domain.ErrorMessage(err, "Failed to fetch today's items")
	}
	return c.Render(http.StatusOK, "admin_items.html", page)
}

// AddItem handles POST /admin/items.
func (h *AdminHandler) AddItem(c echo.Context) error {
	var form itemForm
	if err := c.Bind(&form); err != nil {
		return h.renderItems(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderItems(c, "", "Price must be a non-negative number.")
	}

	body := map[string]any{"name": form.Name, "price": form.Price}
	if err := h.client(c).Post(c.Request().Context(), "/items/master", body, nil); err != nil {
		return h.renderItems(c, "", domain.ErrorMessage(err, "Failed to save item"))
	}
	return flashRedirect(c, "/admin/items", "Item added successfully!")
}

// UpdateItem handles POST /admin/items/:id.
func (h *AdminHandler) UpdateItem(c echo.Context) error {
	var form itemForm
	if err := c.Bind(&form); err != nil {
		return h.renderItems(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderItems(c, "", "Price must be a non-negative number.")
	}

	body := map[string]any{"name": form.Name, "price": form.Price}
	if err := h.client(c).Patch(c.Request().Context(), "/items/master/"+c.Param("id"), body, nil); err != nil {
		return h.renderItems(c, "", domain.ErrorMessage(err, "Failed to save item"))
	}
	return flashRedirect(c, "/admin/items", "Item updated successfully!")
}

// DeleteItem handles POST /admin/items/:id/delete.
func (h *AdminHandler) DeleteItem(c echo.Context) error {
	if err := h.client(c).Delete(c.Request().Context(), "/items/master/"+c.Param("id")); err != nil {
		return h.renderItems(c, "", domain.ErrorMessage(err, "Failed to delete item"))
	}
	return flashRedirect(c, "/admin/items", "Item deleted.")
}

// SetTodayItem handles POST /admin/items/today: puts a master item on
// today's menu with an available quantity.
func (h *AdminHandler) SetTodayItem(c echo.Context) error {
	var form todayForm
	if err := c.Bind(&form); err != nil {
		return h.renderItems(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderItems(c, "", "Enter a valid positive quantity")
	}

	body := map[string]any{"itemId": form.ItemID, "quantity": form.Quantity}
	if err := h.client(c).Post(c.Request().Context(), "/items/today", body, nil); err != nil {
		return h.renderItems(c, "", domain.ErrorMessage(err, "Failed to set today's item"))
	}
	return flashRedirect(c, "/admin/items", "Item set for today!")
}

// UnsetTodayItem handles POST /admin/items/today/:id/unset.
func (h *AdminHandler) UnsetTodayItem(c echo.Context) error {
	if err := h.client(c).Patch(c.Request().Context(), "/items/today/"+c.Param("id")+"/unset", nil, nil); err != nil {
		return h.renderItems(c, "", domain.ErrorMessage(err, "Failed to remove today's item"))
	}
	return flashRedirect(c, "/admin/items", "Item removed from today's menu.")
}

// UpdateQuantity handles POST /admin/items/:id/quantity. The backend keeps
// separate quantities for the master list and today's menu, so the form
// says which one is being edited.
func (h *AdminHandler) UpdateQuantity(c echo.Context) error {
	var form quantityForm
	if err := c.Bind(&form); err != nil {
		return h.renderItems(c, "", "Invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderItems(c, "", "Enter a valid quantity")
	}

	path := "/items/master/" + c.Param("id")
	if form.Today {
		path = "/items/today/" + c.Param("id") + "/quantity"
	}
	body := map[string]any{"quantity": form.Quantity}
	if err := h.client(c).Patch(c.Request().Context(), path, body, nil); err != nil {
		return h.renderItems(c, "", domain.ErrorMessage(err, "Failed to update quantity"))
	}
	return flashRedirect(c, "/admin/items", "Quantity updated successfully!")
}

// --- Transaction ledger ---

type adminTransactionsPage struct {
	Page
	Transactions []Transaction
}

func (h *AdminHandler) Transactions(c echo.Context) error {
	page := adminTransactionsPage{Page: newPage(c, "Transaction History")}

	if err := h.client(c).Get(c.Request().Context(), "/transactions", &page.Transactions); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch transactions")
	}
	return c.Render(http.StatusOK, "admin_transactions.html", page)
}
