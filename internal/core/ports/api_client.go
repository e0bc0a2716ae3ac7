package ports

import "context"

// APIClient is the authenticated request gateway to the canteen backend.
// Every call is JSON in, JSON out against a fixed base URL. A client
// carries at most one bearer credential; WithToken derives a client bound
// to a token without mutating the receiver, so a request issued before a
// logout keeps the credential it started with.
type APIClient interface {
	// WithToken returns a client that attaches "Authorization: Bearer
	// <token>" to every request. An empty token yields an anonymous client.
	WithToken(token string) APIClient

	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error

	// Ping reports whether the backend is reachable at all. Any HTTP
	// response counts as reachable; only transport failures are errors.
	Ping(ctx context.Context) error
}
