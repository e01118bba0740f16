package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mzigoego/mzigo/db"
)

// Login authenticates with email and password. On success the returned token
// pair is persisted and becomes the client's active session.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*LoginResponse, error) {
	res, err := DoJSON[LoginResponse](ctx, c, http.MethodPost, "/auth/login/", creds, WithoutAuth())
	if err != nil {
		return nil, err
	}
	if err := c.SetTokens(ctx, db.TokenPair{Access: res.Access, Refresh: res.Refresh}); err != nil {
		return nil, err
	}
	log.Info().Int("user_id", res.User.ID).Str("role", res.User.Role).Msg("Login successful")
	return &res, nil
}

// Register creates a new account. Like Login, a successful registration
// stores the returned token pair.
func (c *Client) Register(ctx context.Context, data RegisterData) (*LoginResponse, error) {
	res, err := DoJSON[LoginResponse](ctx, c, http.MethodPost, "/auth/register/", data, WithoutAuth())
	if err != nil {
		return nil, err
	}
	if err := c.SetTokens(ctx, db.TokenPair{Access: res.Access, Refresh: res.Refresh}); err != nil {
		return nil, err
	}
	log.Info().Int("user_id", res.User.ID).Str("role", res.User.Role).Msg("Registration successful")
	return &res, nil
}

// Logout tells the server to invalidate the session and clears the stored
// tokens. The local tokens are cleared even when the server call fails, so
// logging out never depends on server reachability.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodPost, "/auth/logout/", map[string]string{})
	if clearErr := c.ClearTokens(ctx); clearErr != nil {
		log.Error().Err(clearErr).Msg("Failed to clear tokens on logout")
	}
	if err != nil {
		log.Debug().Err(err).Msg("Server logout failed, local session cleared anyway")
		return err
	}
	return nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	user, err := DoJSON[User](ctx, c, http.MethodGet, "/auth/profile/", nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the current user's profile and
// returns the updated snapshot. The patch holds only the fields to change.
func (c *Client) UpdateProfile(ctx context.Context, patch map[string]any) (*User, error) {
	user, err := DoJSON[User](ctx, c, http.MethodPatch, "/auth/profile/", patch)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, data ChangePasswordData) error {
	_, err := c.Request(ctx, http.MethodPost, "/auth/change-password/", data)
	return err
}
