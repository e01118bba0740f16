package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/pkg/apierr"
)

// Service drives the session state machine through its named transitions.
// It owns the only Session instance and is the sole writer to it.
type Service struct {
	api     API
	session *Session

	bootMu sync.Mutex
	boot   *bootstrapCall
}

// bootstrapCall tracks one in-flight startup check so concurrent callers
// observe its result instead of issuing duplicate network calls.
type bootstrapCall struct {
	done chan struct{}
	snap Snapshot
}

// NewService is the constructor for the auth service.
func NewService(api API) *Service {
	return &Service{
		api:     api,
		session: NewSession(),
	}
}

// Session exposes the session for observers. Only the service mutates it.
func (s *Service) Session() *Session { return s.session }

// Bootstrap runs the startup auth check: fetch the profile with whatever
// tokens are stored and resolve the session accordingly. Concurrent calls are
// coalesced; later callers block until the in-flight check resolves and share
// its snapshot.
func (s *Service) Bootstrap(ctx context.Context) Snapshot {
	s.bootMu.Lock()
	if call := s.boot; call != nil {
		s.bootMu.Unlock()
		select {
		case <-call.done:
			return call.snap
		case <-ctx.Done():
			return s.session.Snapshot()
		}
	}
	call := &bootstrapCall{done: make(chan struct{})}
	s.boot = call
	s.bootMu.Unlock()

	user, err := s.api.Profile(ctx)
	switch {
	case err == nil && user != nil:
		s.session.toAuthenticated(user)
	case err == nil || apierr.IsSessionExpired(err):
		// No user, or the stored session could not be recovered. Either way
		// the check itself resolved: anonymous, no error.
		s.session.toAnonymous()
	default:
		log.Debug().Err(err).Msg("Startup auth check failed")
		s.session.toAnonymousWithError(err.Error())
	}

	call.snap = s.session.Snapshot()
	s.bootMu.Lock()
	s.boot = nil
	s.bootMu.Unlock()
	close(call.done)

	return call.snap
}

// Login authenticates and transitions to Authenticated on success. On failure
// the session records the error and stays where it was.
func (s *Service) Login(ctx context.Context, creds client.LoginCredentials) (Snapshot, error) {
	res, err := s.api.Login(ctx, creds)
	if err != nil {
		s.session.setError(err.Error())
		return s.session.Snapshot(), err
	}
	s.session.toAuthenticated(&res.User)
	return s.session.Snapshot(), nil
}

// Register creates an account and transitions to Authenticated on success.
func (s *Service) Register(ctx context.Context, data client.RegisterData) (Snapshot, error) {
	res, err := s.api.Register(ctx, data)
	if err != nil {
		s.session.setError(err.Error())
		return s.session.Snapshot(), err
	}
	s.session.toAuthenticated(&res.User)
	return s.session.Snapshot(), nil
}

// Logout ends the session. The state becomes Anonymous even when the server
// call fails; the returned error only reports what the server said.
func (s *Service) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.session.toAnonymous()
	return err
}

// UpdateProfile applies a partial profile update and merges the server's
// updated snapshot into the session user.
func (s *Service) UpdateProfile(ctx context.Context, patch map[string]any) (*client.User, error) {
	user, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.session.replaceUser(user)
	return user, nil
}

// ChangePassword changes the password. The session state is unaffected.
func (s *Service) ChangePassword(ctx context.Context, data client.ChangePasswordData) error {
	return s.api.ChangePassword(ctx, data)
}

// SessionExpired is the entry point for the client's session-expired signal:
// the refresh cycle gave up, tokens are already cleared, and the session must
// tear down. Wire it with client.OnSessionExpired(service.SessionExpired).
func (s *Service) SessionExpired() {
	log.Info().Msg("Session expired, tearing down auth state")
	s.session.toAnonymous()
}
