package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/models"
	"github.com/parishportal/parishportal/internal/client/repositories/state"
	"github.com/parishportal/parishportal/internal/common"
	"github.com/parishportal/parishportal/internal/logging"
)

// LoginResult is the typed outcome of Login/Register. Authentication
// failures are never fatal: they always resolve to this shape, never to an
// escaping error.
type LoginResult struct {
	Success bool
	Message string
	User    *models.User
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileInput is the payload for profile updates.
type ProfileInput struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	BaptismDate string `json:"baptism_date,omitempty"`
}

// AuthService is the single source of truth for "who is logged in".
//
// Contract:
//   - CheckAuth: one-shot session restore on application start. Reads the
//     persisted token; absent token finishes immediately with no network
//     call. Any profile-fetch failure deletes the stored session. Errors
//     are logged, never surfaced. Loading ends false exactly once.
//   - Login: authenticates and persists the session (token plus cached
//     profile, one transaction); returns a typed result.
//   - Logout: deletes the stored session and clears the user; no network
//     call; idempotent.
//   - CurrentUser/IsAuthenticated/Loading: concurrency-safe state views.
type AuthService interface {
	CheckAuth(ctx context.Context)
	Login(ctx context.Context, identifier string, password []byte) LoginResult
	Logout(ctx context.Context) error
	Register(ctx context.Context, in RegisterInput) LoginResult
	UpdateProfile(ctx context.Context, in ProfileInput) (*client.Result[models.User], error)
	ChangePassword(ctx context.Context, current, next []byte) (*client.Envelope, error)
	CurrentUser() *models.User
	IsAuthenticated() bool
	Loading() bool
}

// authService is the concrete AuthService backed by the API client and the
// durable state repository.
type authService struct {
	client *client.Client
	store  state.Repository
	log    logging.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool

	checkOnce sync.Once
}

// NewAuthService constructs an AuthService. Loading starts true and drops
// to false when CheckAuth completes.
func NewAuthService(c *client.Client, store state.Repository, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log, loading: true}
}

// loginResponse mirrors the login wire shape, where token and user are
// top-level siblings of success rather than nested under data.
type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

func (a *authService) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *authService) finishLoading() {
	a.mu.Lock()
	a.loading = false
	a.mu.Unlock()
}

// CheckAuth restores the session from the persisted token. Subsequent calls
// are no-ops; the loading flag transitions true->false exactly once.
func (a *authService) CheckAuth(ctx context.Context) {
	a.checkOnce.Do(func() {
		defer a.finishLoading()

		token, err := a.store.Get(ctx, common.AuthTokenKey)
		if err != nil {
			a.log.Error(ctx, "session restore: read token", "error", err)
			return
		}
		if len(token) == 0 {
			return
		}

		// The cached profile identifies whose session is being restored;
		// the backend remains the authority on whether it still is one.
		if cached, err := a.store.Get(ctx, common.AuthUserKey); err == nil && len(cached) > 0 {
			var u models.User
			if json.Unmarshal(cached, &u) == nil {
				a.log.Debug(ctx, "session restore: checking token", "user", u.Email)
			}
		}

		env, err := a.client.Get(ctx, "/auth/profile", nil)
		if err != nil {
			a.invalidate(ctx)
			a.log.Warn(ctx, "session restore: profile fetch failed", "error", err)
			return
		}
		if !env.Success {
			a.invalidate(ctx)
			a.log.Info(ctx, "session restore: token rejected", "message", env.Message)
			return
		}

		res, err := client.DecodeResult[models.User](env)
		if err != nil {
			a.invalidate(ctx)
			a.log.Warn(ctx, "session restore: bad profile payload", "error", err)
			return
		}

		u := res.Data
		a.setUser(&u)
		a.log.Info(ctx, "session restored", "user", u.Email, "role", u.Role)
	})
}

// invalidate drops the persisted session (token plus cached profile, one
// transaction) after a failed authenticated call.
func (a *authService) invalidate(ctx context.Context) {
	if err := a.store.DeleteAll(ctx, common.AuthTokenKey, common.AuthUserKey); err != nil {
		a.log.Error(ctx, "delete stale session", "error", err)
	}
}

// Login authenticates with the backend. The identifier is the account
// email; the wire field stays "username" for backend compatibility.
// Success requires success=true plus both token and user present; any
// other shape is a failure result and stored state is left untouched.
func (a *authService) Login(ctx context.Context, identifier string, password []byte) LoginResult {
	body := map[string]string{
		"username": identifier,
		"password": string(password),
	}

	var resp loginResponse
	if err := a.client.DoInto(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		a.log.Warn(ctx, "login request failed", "error", err)
		return LoginResult{Success: false, Message: "login failed, please try again"}
	}

	if !resp.Success || resp.Token == "" || resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		return LoginResult{Success: false, Message: msg}
	}

	profile, err := json.Marshal(resp.User)
	if err != nil {
		a.log.Error(ctx, "encode profile cache", "error", err)
		return LoginResult{Success: false, Message: "could not persist session"}
	}
	// Token and cached profile land together or not at all.
	err = a.store.SetAll(ctx, map[string][]byte{
		common.AuthTokenKey: []byte(resp.Token),
		common.AuthUserKey:  profile,
	})
	if err != nil {
		a.log.Error(ctx, "persist session", "error", err)
		return LoginResult{Success: false, Message: "could not persist session"}
	}

	a.setUser(resp.User)
	return LoginResult{Success: true, Message: resp.Message, User: resp.User}
}

// Logout deletes the persisted session and clears the user. No network call.
func (a *authService) Logout(ctx context.Context) error {
	a.setUser(nil)
	return a.store.DeleteAll(ctx, common.AuthTokenKey, common.AuthUserKey)
}

// Register creates an account. Like Login it resolves to a typed result; a
// successful registration does not log the user in.
func (a *authService) Register(ctx context.Context, in RegisterInput) LoginResult {
	env, err := a.client.Post(ctx, "/auth/register", in)
	if err != nil {
		a.log.Warn(ctx, "register request failed", "error", err)
		return LoginResult{Success: false, Message: "registration failed, please try again"}
	}
	if !env.Success {
		return LoginResult{Success: false, Message: env.Message}
	}
	return LoginResult{Success: true, Message: env.Message}
}

// UpdateProfile sends the profile mutation and refreshes the cached user
// on success.
func (a *authService) UpdateProfile(ctx context.Context, in ProfileInput) (*client.Result[models.User], error) {
	env, err := a.client.Put(ctx, "/auth/profile", in)
	if err != nil {
		return nil, err
	}
	res, err := client.DecodeResult[models.User](env)
	if err != nil {
		return nil, err
	}
	if res.Success {
		u := res.Data
		a.setUser(&u)
	}
	return res, nil
}

// ChangePassword sends the password mutation; the envelope is returned
// verbatim so callers can surface message/errors.
func (a *authService) ChangePassword(ctx context.Context, current, next []byte) (*client.Envelope, error) {
	body := map[string]string{
		"current_password": string(current),
		"new_password":     string(next),
	}
	return a.client.Put(ctx, "/auth/change-password", body)
}

func (a *authService) CurrentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *authService) IsAuthenticated() bool {
	return a.CurrentUser() != nil
}

func (a *authService) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}
