package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/web/middleware"
)

// Page carries the state every screen template needs: the title, the
// current session for the navigation bar, and the inline flash messages
// all three failure classes are normalized into.
type Page struct {
	Title   string
	Session domain.Session
	Error   string
	Success string
}

func newPage(c echo.Context, title string) Page {
	return Page{Title: title, Session: middleware.CurrentSession(c)}
}

// records round-tripped from the backend; only the fields the screens
// render are decoded, everything else stays server-side.

type Employee struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	EmployeeID string  `json:"employeeId"`
	Balance    float64 `json:"balance"`
}

type Item struct {
	ID               string  `json:"_id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Quantity         int     `json:"quantity"`
	IsTodayAvailable bool    `json:"isTodayAvailable"`
}

type TransactionParty struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Transaction struct {
	ID          string            `json:"_id"`
	CreatedAt   string            `json:"createdAt"`
	Employee    *TransactionParty `json:"employee"`
	Type        string            `json:"type"`
	Amount      float64           `json:"amount"`
	Description string            `json:"description"`
}
