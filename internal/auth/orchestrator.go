package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/clipbridge/clipbridge/internal/api"
	"github.com/clipbridge/clipbridge/internal/models"
	"github.com/clipbridge/clipbridge/internal/session"
)

// ErrCallbackInvalid indicates an OAuth callback arrived without any
// recognizable parameters.
var ErrCallbackInvalid = errors.New("invalid callback parameters")

// GraceDelay is how long the user sees a callback error before being sent
// back home.
const GraceDelay = 3 * time.Second

// Backend is the subset of the API client the orchestrator depends on.
type Backend interface {
	ProfileWithToken(ctx context.Context, token string) (models.User, error)
	ExchangeCode(ctx context.Context, code string) (models.TokenResponse, error)
	Logout(ctx context.Context) error
	LoginURL() string
	ConnectURL(token string) string
}

// Browser opens a URL in the user's browser. The OAuth initiation endpoints
// are redirect targets, not XHR calls: control only returns to the client
// through the callback listener.
type Browser interface {
	Open(url string) error
}

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// Navigator reacts to auth flow outcomes by steering what the client shows
// or does next.
type Navigator interface {
	ToHome()
	ToUpload()
	ToLogin()
}

// Options tunes the orchestrator. Zero values fall back to defaults.
type Options struct {
	Browser    Browser
	Notifier   Notifier
	Navigator  Navigator
	Logger     *slog.Logger
	Sleep      func(time.Duration) // injectable for tests
	GraceDelay time.Duration
}

// Orchestrator owns the externally visible session lifecycle: login, logout,
// platform connection, and OAuth callback handling.
type Orchestrator struct {
	store      session.Store
	backend    Backend
	browser    Browser
	notifier   Notifier
	navigator  Navigator
	logger     *slog.Logger
	sleep      func(time.Duration)
	graceDelay time.Duration
}

// New constructs an Orchestrator over the provided store and backend client.
func New(store session.Store, backend Backend, opts Options) *Orchestrator {
	if store == nil {
		panic("auth: session store must not be nil")
	}
	if backend == nil {
		panic("auth: backend client must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	grace := opts.GraceDelay
	if grace <= 0 {
		grace = GraceDelay
	}

	return &Orchestrator{
		store:      store,
		backend:    backend,
		browser:    opts.Browser,
		notifier:   opts.Notifier,
		navigator:  opts.Navigator,
		logger:     logger,
		sleep:      sleep,
		graceDelay: grace,
	}
}

// Session returns the current session snapshot.
func (o *Orchestrator) Session() models.Session {
	return o.store.Load()
}

// Login opens the backend's OAuth initiation endpoint in the browser. The
// flow completes asynchronously when the backend redirects to the callback
// listener; from this call's perspective it is fire-and-forget.
func (o *Orchestrator) Login(_ context.Context) error {
	loginURL := o.backend.LoginURL()
	o.logger.Info("starting login flow", "url", loginURL)
	if err := o.open(loginURL); err != nil {
		o.notify(false, "Login Failed", "Failed to initiate login")
		return err
	}
	return nil
}

// Connect opens the YouTube authorization endpoint in the browser. The
// connected flag is set only when the platform callback arrives, never here.
func (o *Orchestrator) Connect(_ context.Context) error {
	snapshot := o.store.Load()
	if snapshot.Token == "" {
		return api.ErrAuthRequired
	}
	connectURL := o.backend.ConnectURL(snapshot.Token)
	o.logger.Info("starting youtube connection flow")
	if err := o.open(connectURL); err != nil {
		o.notify(false, "Connection Failed", "Failed to connect YouTube account")
		return err
	}
	return nil
}

// Disconnect clears the platform connection locally. No backend call is made.
func (o *Orchestrator) Disconnect() models.Session {
	if err := o.store.ClearConnection(); err != nil {
		o.logger.Error("failed to clear youtube connection", "error", err)
	}
	o.notify(true, "YouTube Disconnected", "Your YouTube account has been disconnected.")
	return o.store.Load()
}

// Logout ends the session. The backend call is best-effort: its failure is
// logged and swallowed, and local state is always cleared.
func (o *Orchestrator) Logout(ctx context.Context) models.Session {
	if o.store.Load().Token != "" {
		if err := o.backend.Logout(ctx); err != nil {
			o.logger.Warn("backend logout failed", "error", err)
		}
	}
	if err := o.store.Clear(); err != nil {
		o.logger.Error("failed to clear session state", "error", err)
	}
	o.notify(true, "Logged out", "You have been logged out successfully.")
	return o.store.Load()
}

// HandleCallback processes an OAuth redirect landing on the callback
// listener. Three mutually exclusive branches are tried in order: the
// platform-connection callback, a direct token callback, and an
// authorization-code callback. Anything else is rejected with
// ErrCallbackInvalid after the grace delay.
func (o *Orchestrator) HandleCallback(ctx context.Context, callbackPath string, query url.Values) (models.Session, error) {
	if strings.TrimRight(callbackPath, "/") == "/youtube/callback" {
		return o.handleConnectionCallback(query)
	}

	accessToken := query.Get("access_token")
	userID := query.Get("user")
	if accessToken != "" && userID != "" {
		return o.handleTokenCallback(ctx, accessToken, userID)
	}

	if code := query.Get("code"); code != "" {
		return o.handleCodeCallback(ctx, code)
	}

	o.logger.Error("unrecognized callback parameters", "path", callbackPath, "params", query.Encode())
	return o.failHome("Authentication Failed", "Invalid callback parameters", ErrCallbackInvalid)
}

// handleConnectionCallback completes the YouTube connection. The token
// arrives in youtube_access_token, with access_token as a fallback.
func (o *Orchestrator) handleConnectionCallback(query url.Values) (models.Session, error) {
	token := query.Get("youtube_access_token")
	if token == "" {
		token = query.Get("access_token")
	}
	if token == "" {
		o.logger.Error("no youtube token received in callback")
		return o.failHome("Connection Failed", "Failed to get YouTube token. Please try connecting again.", ErrCallbackInvalid)
	}

	if err := o.store.SaveConnection(token); err != nil {
		return o.failHome("Connection Failed", "Failed to store YouTube token", err)
	}
	o.logger.Info("youtube connection established")
	o.notify(true, "YouTube Connected", "Your YouTube account has been connected successfully.")
	if o.navigator != nil {
		o.navigator.ToUpload()
	}
	return o.store.Load(), nil
}

// handleTokenCallback completes a login where the backend handed the token
// directly in the redirect. The token is persisted before the profile fetch
// so a profile failure still leaves the user authenticated.
func (o *Orchestrator) handleTokenCallback(ctx context.Context, accessToken, userID string) (models.Session, error) {
	if err := o.store.SaveToken(accessToken); err != nil {
		return o.failHome("Authentication Failed", "Failed to store session token", err)
	}

	user, err := o.backend.ProfileWithToken(ctx, accessToken)
	if err != nil {
		o.logger.Warn("profile fetch failed, using placeholder user", "error", err)
		user = placeholderUser(userID)
		if err := o.store.SaveUser(user); err != nil {
			return o.failHome("Authentication Failed", "Failed to store user record", err)
		}
		o.notify(true, "Logged in successfully", "Welcome back! (User details unavailable)")
	} else {
		if err := o.store.SaveUser(user); err != nil {
			return o.failHome("Authentication Failed", "Failed to store user record", err)
		}
		name := user.Name
		if name == "" {
			name = "User"
		}
		o.notify(true, "Logged in successfully", fmt.Sprintf("Welcome back, %s!", name))
	}

	if o.navigator != nil {
		o.navigator.ToHome()
	}
	return o.store.Load(), nil
}

// handleCodeCallback exchanges an authorization code for a token.
func (o *Orchestrator) handleCodeCallback(ctx context.Context, code string) (models.Session, error) {
	tokens, err := o.backend.ExchangeCode(ctx, code)
	if err != nil {
		o.logger.Error("code exchange failed", "error", err)
		return o.failHome("Authentication Failed", "Failed to exchange authorization code for token", err)
	}

	if err := o.store.SaveToken(tokens.AccessToken); err != nil {
		return o.failHome("Authentication Failed", "Failed to store session token", err)
	}

	user, err := o.backend.ProfileWithToken(ctx, tokens.AccessToken)
	if err != nil {
		o.logger.Warn("profile fetch failed, using placeholder user", "error", err)
		user = placeholderUser("")
	}
	if err := o.store.SaveUser(user); err != nil {
		return o.failHome("Authentication Failed", "Failed to store user record", err)
	}

	o.notify(true, "Logged in successfully", "Welcome back!")
	if o.navigator != nil {
		o.navigator.ToHome()
	}
	return o.store.Load(), nil
}

// failHome surfaces the error, waits out the grace delay, and sends the user
// home. The delay gives the callback page time to show what went wrong.
func (o *Orchestrator) failHome(title, detail string, err error) (models.Session, error) {
	o.notify(false, title, detail)
	o.sleep(o.graceDelay)
	if o.navigator != nil {
		o.navigator.ToHome()
	}
	return o.store.Load(), err
}

func (o *Orchestrator) open(target string) error {
	if o.browser == nil {
		return errors.New("auth: no browser available")
	}
	return o.browser.Open(target)
}

func (o *Orchestrator) notify(ok bool, title, detail string) {
	if o.notifier == nil {
		return
	}
	if ok {
		o.notifier.Success(title, detail)
		return
	}
	o.notifier.Error(title, detail)
}

func placeholderUser(sub string) models.User {
	return models.User{
		Sub:   sub,
		Email: "user@example.com",
		Name:  "User",
	}
}
