package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mzigoego/mzigo/db"
	"github.com/mzigoego/mzigo/pkg/apierr"
)

// refreshCall tracks one in-flight refresh attempt so concurrent requests that
// each hit 401 share a single call to the refresh endpoint.
type refreshCall struct {
	done chan struct{}
	err  error
}

// refreshAccessToken runs at most one refresh cycle. Callers arriving while a
// refresh is already in flight wait for its result instead of issuing a
// duplicate network call. On failure both tokens are cleared and the session
// is expired; there is no retry loop and no backoff.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	c.refreshMu.Lock()
	if call := c.inflight; call != nil {
		c.refreshMu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return apierr.New(apierr.Transport, ctx.Err().Error(), ctx.Err())
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	c.inflight = call
	c.refreshMu.Unlock()

	call.err = c.performRefresh(ctx)

	c.refreshMu.Lock()
	c.inflight = nil
	c.refreshMu.Unlock()
	close(call.done)

	return call.err
}

// performRefresh issues exactly one unauthenticated call to the refresh
// endpoint. Any failure, including a missing refresh token, escalates to
// session expiration rather than an ordinary error.
func (c *Client) performRefresh(ctx context.Context) error {
	pair, err := c.store.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load refresh token")
		return c.expireSession(ctx)
	}
	if pair == nil || pair.Refresh == "" {
		log.Debug().Msg("No refresh token stored, session cannot be recovered")
		return c.expireSession(ctx)
	}

	payload := map[string]string{"refresh": pair.Refresh}
	result, err := DoJSON[struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}](ctx, c, http.MethodPost, "/token/refresh/", payload, WithoutAuth())
	if err != nil || result.Access == "" {
		log.Info().Err(err).Msg("Token refresh failed, expiring session")
		return c.expireSession(ctx)
	}

	// The server may rotate the refresh token; when it doesn't, the old one
	// stays valid and is retained.
	if result.Refresh == "" {
		result.Refresh = pair.Refresh
	}
	if err := c.SetTokens(ctx, db.TokenPair{Access: result.Access, Refresh: result.Refresh}); err != nil {
		return c.expireSession(ctx)
	}

	log.Info().Msg("Access token refreshed")
	return nil
}

// expireSession clears both tokens, notifies subscribers, and returns the
// distinguished session-expired error.
func (c *Client) expireSession(ctx context.Context) error {
	if err := c.ClearTokens(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear tokens during session expiration")
	}

	c.subMu.Lock()
	subs := make([]func(), len(c.expiredSubs))
	copy(subs, c.expiredSubs)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}

	return apierr.NewSessionExpired()
}
