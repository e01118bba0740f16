package auth

import (
	"context"

	"github.com/mzigoego/mzigo/client"
)

// API defines the contract for the backend calls the session layer makes.
// *client.Client satisfies it; tests substitute mocks.
type API interface {
	Login(ctx context.Context, creds client.LoginCredentials) (*client.LoginResponse, error)
	Register(ctx context.Context, data client.RegisterData) (*client.LoginResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, patch map[string]any) (*client.User, error)
	ChangePassword(ctx context.Context, data client.ChangePasswordData) error
}
