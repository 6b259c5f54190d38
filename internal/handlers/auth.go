package handlers

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/oauth"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
)

const (
	stateTTL        = 10 * time.Minute
	authCodeTTL     = 30 * time.Second
	exchangeTimeout = 30 * time.Second
)

// AuthHandler drives the OAuth login flow: consent URL, provider callback,
// one-time code exchange, and refresh-token rotation. States and auth codes
// are short-lived and held in memory only.
type AuthHandler struct {
	cfg          *config.Config
	providers    map[string]oauth.Provider
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	states       sync.Map
	authCodes    sync.Map
}

type stateData struct {
	expiresAt time.Time
}

type authCodeData struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
) *AuthHandler {
	h := &AuthHandler{
		cfg:          cfg,
		providers:    make(map[string]oauth.Provider),
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}

	if cfg.GitHub.ClientID != "" {
		h.providers["github"] = oauth.NewGitHubProvider(cfg.GitHub)
	}
	if cfg.Google.ClientID != "" {
		h.providers["google"] = oauth.NewGoogleProvider(cfg.Google)
	}

	go h.janitor()

	return h
}

// janitor sweeps expired states and auth codes once a minute. Lookups also
// check expiry, so the sweep only bounds memory.
func (h *AuthHandler) janitor() {
	for range time.Tick(time.Minute) {
		sweep(&h.states, func(v interface{}) time.Time {
			return v.(stateData).expiresAt
		})
		sweep(&h.authCodes, func(v interface{}) time.Time {
			return v.(authCodeData).expiresAt
		})
	}
}

func sweep(m *sync.Map, expiry func(interface{}) time.Time) {
	now := time.Now()
	m.Range(func(key, value interface{}) bool {
		if now.After(expiry(value)) {
			m.Delete(key)
		}
		return true
	})
}

func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		c.BadRequest("unsupported provider: " + c.Param("provider"))
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}
	h.states.Store(state, stateData{expiresAt: time.Now().Add(stateTTL)})

	_ = c.JSON(200, dto.ConsentURLResponse{URL: p.GetConsentURL(state)})
}

// Callback handles the provider redirect. On success it mints a one-time
// auth code and renders a page that hands the code to the frontend; the
// access token itself is only issued later via ExchangeCode.
func (h *AuthHandler) Callback(c *drift.Context) {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		h.redirectWithError(c, "unsupported provider")
		return
	}

	if msg := h.consumeState(c.QueryParam("state")); msg != "" {
		h.redirectWithError(c, msg)
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), exchangeTimeout)
	defer cancel()

	userInfo, err := p.ExchangeCode(ctx, code)
	if err != nil {
		h.redirectWithError(c, "failed to exchange code: "+err.Error())
		return
	}

	user, err := h.userService.FindOrCreateFromOAuth(ctx, userInfo)
	if err != nil {
		h.redirectWithError(c, "failed to create user")
		return
	}

	authCode, err := oauth.GenerateState()
	if err != nil {
		h.redirectWithError(c, "failed to generate auth code")
		return
	}
	h.authCodes.Store(authCode, authCodeData{
		userID:    user.ID,
		expiresAt: time.Now().Add(authCodeTTL),
	})

	deepLink := h.cfg.FrontendCallbackURL + "?code=" + url.QueryEscape(authCode)
	h.renderSuccessPage(c, deepLink, authCode)
}

func (h *AuthHandler) consumeState(state string) (errMsg string) {
	if state == "" {
		return "missing state parameter"
	}
	v, ok := h.states.LoadAndDelete(state)
	if !ok {
		return "invalid or expired state"
	}
	if sd, ok := v.(stateData); !ok || time.Now().After(sd.expiresAt) {
		return "state expired"
	}
	return ""
}

// ExchangeCode trades a one-time auth code for a token pair. Codes are
// single-use: the lookup deletes the entry even when expired.
func (h *AuthHandler) ExchangeCode(c *drift.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Code == "" {
		c.BadRequest("code is required")
		return
	}

	v, ok := h.authCodes.LoadAndDelete(req.Code)
	if !ok {
		c.Unauthorized("invalid or expired code")
		return
	}
	codeData, ok := v.(authCodeData)
	if !ok || time.Now().After(codeData.expiresAt) {
		c.Unauthorized("code expired")
		return
	}

	ctx := context.Background()
	user, err := h.userService.GetByID(ctx, codeData.userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	h.issueTokens(c, ctx, user.ID, user.Email)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. Both the JWT signature and the stored hash must
// check out, and they must agree on the user.
func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := context.Background()
	tokenHash := services.HashToken(req.RefreshToken)

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		c.InternalServerError("failed to revoke old token")
		return
	}

	h.issueTokens(c, ctx, user.ID, user.Email)
}

// issueTokens generates a token pair, persists the refresh-token hash and
// writes the token response.
func (h *AuthHandler) issueTokens(c *drift.Context, ctx context.Context, userID uuid.UUID, email string) {
	pair, err := h.jwtService.GenerateTokenPair(userID, email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	hash := services.HashToken(pair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	// Revocation of an unknown token is not an error; logout is idempotent.
	if req.RefreshToken != "" {
		hash := services.HashToken(req.RefreshToken)
		_ = h.tokenService.RevokeRefreshToken(context.Background(), hash)
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions logged out"})
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	deepLink := h.cfg.FrontendCallbackURL + "?error=" + url.QueryEscape(errMsg)
	_ = c.HTML(400, fmt.Sprintf(callbackPage,
		"Sign-in failed", // <title>
		"Sign-in failed",
		errMsg,
		"", // no manual code block
		deepLink,
	))
}

func (h *AuthHandler) renderSuccessPage(c *drift.Context, deepLink, code string) {
	codeBlock := fmt.Sprintf(`
      <hr>
      <p class="muted">If nothing happens, paste this code into Data Share Hub:</p>
      <div class="code-row">
        <code id="code">%s</code>
        <button id="copy" onclick="copyCode()">Copy</button>
      </div>`, code)

	_ = c.HTML(200, fmt.Sprintf(callbackPage,
		"Signed in", // <title>
		"Signed in",
		"Taking you back to Data Share Hub…",
		codeBlock,
		deepLink,
	))
}

// callbackPage is the minimal interstitial shown after the OAuth provider
// redirects back. It immediately deep-links into the frontend and offers the
// code for manual copy as a fallback.
const callbackPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s · Data Share Hub</title>
  <style>
    body { margin: 0; min-height: 100vh; display: grid; place-items: center;
           font-family: "Segoe UI", Roboto, sans-serif; background: #0f172a; color: #e2e8f0; }
    .card { width: min(420px, 90vw); background: #1e293b; border-radius: 12px;
            padding: 32px; text-align: center; box-shadow: 0 8px 24px rgba(0,0,0,.4); }
    .logo { font-size: 32px; margin-bottom: 12px; }
    h1 { font-size: 18px; margin: 0 0 6px; }
    p { margin: 4px 0; font-size: 14px; }
    .muted { color: #94a3b8; font-size: 13px; }
    hr { border: none; border-top: 1px solid #334155; margin: 20px 0; }
    .code-row { display: flex; gap: 8px; margin-top: 10px; }
    code { flex: 1; background: #0f172a; border-radius: 6px; padding: 8px;
           font-size: 12px; word-break: break-all; text-align: left; }
    button { background: #38bdf8; color: #0f172a; border: none; border-radius: 6px;
             padding: 0 14px; font-weight: 600; cursor: pointer; }
  </style>
</head>
<body>
  <div class="card">
    <div class="logo">&#128202;</div>
    <h1>%s</h1>
    <p class="muted">%s</p>
    <p class="muted">You can close this tab.</p>%s
  </div>
  <script>
    location.replace(%q);
    function copyCode() {
      navigator.clipboard.writeText(document.getElementById("code").textContent)
        .then(() => { document.getElementById("copy").textContent = "Copied"; });
    }
  </script>
</body>
</html>`
