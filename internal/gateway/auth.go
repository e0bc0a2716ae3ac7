package gateway

import (
	"context"
	"fmt"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
)

// authResponse matches the backend's flat auth payload: the token plus the
// user record at the top level.
type authResponse struct {
	Token string `json:"token"`
	domain.User
}

// Login authenticates against POST /auth/login. The call is always
// anonymous regardless of any credential bound to the receiver.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthPayload, error) {
	anon := *c
	anon.token = ""

	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := anon.do(ctx, "POST", "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("gateway: login response carried no token")
	}
	return &ports.AuthPayload{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account against POST /auth/register. The employeeId
// field is only sent for the employee role, matching what the backend
// expects.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthPayload, error) {
	anon := *c
	anon.token = ""

	body := map[string]any{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
		"role":     input.Role,
	}
	if input.Role == domain.RoleEmployee {
		body["employeeId"] = input.EmployeeID
	}

	var resp authResponse
	if err := anon.do(ctx, "POST", "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("gateway: register response carried no token")
	}
	return &ports.AuthPayload{Token: resp.Token, User: resp.User}, nil
}
