package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
	"github.com/canteen-system/canteen-console/internal/web/handler"
	"github.com/canteen-system/canteen-console/internal/web/middleware"
)

// Deps carries everything the router wires into handlers. All session and
// gateway state is injected explicitly; nothing global.
type Deps struct {
	Sessions     ports.SessionStore
	API          ports.APIClient
	Redis        *redis.Client
	CookieSecret string
	SessionTTL   time.Duration
	Log          zerolog.Logger
}

// route is one row of the navigation surface: a path, its handler, and the
// role the guard requires. public routes skip the guard entirely; a
// guarded route with an empty role checks authentication only.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	role    string
	public  bool
}

// NewRouter builds the Echo instance with the full screen surface
// registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("canteen_console"))
	e.Use(middleware.Session(deps.Sessions, deps.CookieSecret))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.CookieSecret, deps.SessionTTL)
	adminHandler := handler.NewAdminHandler(deps.API)
	employeeHandler := handler.NewEmployeeHandler(deps.API)

	// --- Routing table: every path with its view and required role ---
	routes := []route{
		{http.MethodGet, "/login", authHandler.LoginPage, "", true},
		{http.MethodPost, "/login", authHandler.Login, "", true},
		{http.MethodGet, "/register", authHandler.RegisterPage, "", true},
		{http.MethodPost, "/register", authHandler.Register, "", true},
		{http.MethodPost, "/logout", authHandler.Logout, "", true},

		{http.MethodGet, "/admin", adminHandler.Dashboard, domain.RoleAdmin, false},
		{http.MethodGet, "/admin/employees", adminHandler.Employees, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/employees", adminHandler.AddEmployee, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/employees/credit", adminHandler.CreditEmployee, domain.RoleAdmin, false},
		{http.MethodGet, "/admin/items", adminHandler.Items, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/items", adminHandler.AddItem, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/items/today", adminHandler.SetTodayItem, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/items/today/:id/unset", adminHandler.UnsetTodayItem, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/items/:id", adminHandler.UpdateItem, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/items/:id/delete", adminHandler.DeleteItem, domain.RoleAdmin, false},
		{http.MethodPost, "/admin/items/:id/quantity", adminHandler.UpdateQuantity, domain.RoleAdmin, false},
		{http.MethodGet, "/admin/transactions", adminHandler.Transactions, domain.RoleAdmin, false},

		{http.MethodGet, "/employee", employeeHandler.Dashboard, domain.RoleEmployee, false},
		{http.MethodGet, "/employee/profile", employeeHandler.Profile, domain.RoleEmployee, false},
		{http.MethodPost, "/employee/profile", employeeHandler.UpdateProfile, domain.RoleEmployee, false},
		{http.MethodPost, "/employee/profile/password", employeeHandler.ChangePassword, domain.RoleEmployee, false},
		{http.MethodPost, "/employee/profile/credit", employeeHandler.SelfCredit, domain.RoleEmployee, false},
		{http.MethodGet, "/employee/menu", employeeHandler.Menu, domain.RoleEmployee, false},
		{http.MethodPost, "/employee/menu/purchase", employeeHandler.Purchase, domain.RoleEmployee, false},
		{http.MethodGet, "/employee/passbook", employeeHandler.Passbook, domain.RoleEmployee, false},
	}
	for _, r := range routes {
		if r.public {
			e.Add(r.method, r.path, r.handler)
			continue
		}
		e.Add(r.method, r.path, r.handler, middleware.Guard(r.role))
	}

	// Default and catch-all navigations land on login.
	toLogin := func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	e.GET("/", toLogin)
	e.RouteNotFound("/*", toLogin)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.API)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e, nil
}
