package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
	"github.com/canteen-system/canteen-console/internal/web/middleware"
)

// AuthHandler serves the login and registration screens and drives the
// session lifecycle: establish on success, clear on logout.
type AuthHandler struct {
	sessions     ports.SessionStore
	cookieSecret string
	sessionTTL   time.Duration
}

func NewAuthHandler(sessions ports.SessionStore, cookieSecret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookieSecret: cookieSecret, sessionTTL: sessionTTL}
}

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name            string `form:"name"            validate:"required"`
	Email           string `form:"email"           validate:"required,email"`
	Password        string `form:"password"        validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `form:"role"            validate:"required,oneof=admin employee"`
	EmployeeID      string `form:"employeeId"      validate:"required_if=Role employee"`
}

type loginPage struct {
	Page
	Form loginForm
}

type registerPage struct {
	Page
	Form registerForm
}

// LoginPage renders the login form. An already authenticated visitor is
// sent straight to their role home instead.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess.IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, domain.HomePath(sess.Role()))
	}
	return c.Render(http.StatusOK, "login.html", loginPage{Page: newPage(c, "Sign in")})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(c echo.Context) error {
	page := loginPage{Page: newPage(c, "Sign in")}

	if err := c.Bind(&page.Form); err != nil {
		page.Error = "Invalid form submission"
		return c.Render(http.StatusOK, "login.html", page)
	}
	if err := c.Validate(&page.Form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusOK, "login.html", page)
	}

	sid := middleware.SessionID(c)
	if sid == "" {
		sid = uuid.NewString()
	}

	result := h.sessions.Login(c.Request().Context(), sid, page.Form.Email, page.Form.Password)
	if !result.Success {
		page.Error = result.Message
		return c.Render(http.StatusOK, "login.html", page)
	}

	if err := middleware.IssueCookie(c, h.cookieSecret, sid, h.sessionTTL); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, result.RedirectTo)
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess.IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, domain.HomePath(sess.Role()))
	}
	page := registerPage{Page: newPage(c, "Create account")}
	page.Form.Role = domain.RoleEmployee
	return c.Render(http.StatusOK, "register.html", page)
}

// Register handles the registration form submission. Same persistence and
// navigation side effects as Login on success.
func (h *AuthHandler) Register(c echo.Context) error {
	page := registerPage{Page: newPage(c, "Create account")}

	if err := c.Bind(&page.Form); err != nil {
		page.Error = "Invalid form submission"
		return c.Render(http.StatusOK, "register.html", page)
	}
	if err := c.Validate(&page.Form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusOK, "register.html", page)
	}

	sid := middleware.SessionID(c)
	if sid == "" {
		sid = uuid.NewString()
	}

	result := h.sessions.Register(c.Request().Context(), sid, ports.RegisterInput{
		Name:       page.Form.Name,
		Email:      page.Form.Email,
		Password:   page.Form.Password,
		Role:       page.Form.Role,
		EmployeeID: page.Form.EmployeeID,
	})
	if !result.Success {
		page.Error = result.Message
		return c.Render(http.StatusOK, "register.html", page)
	}

	if err := middleware.IssueCookie(c, h.cookieSecret, sid, h.sessionTTL); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, result.RedirectTo)
}

// Logout clears the durable session and the cookie, then lands on login.
// A logout without a session is a harmless no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			// The cookie is cleared regardless; the stale record expires
			// with its TTL.
			c.Logger().Error(err)
		}
	}
	middleware.ClearCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
