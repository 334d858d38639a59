package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/auth"
)

// fakeUsers is an in-memory identity store wired into the Authenticator.
type fakeUsers struct {
	idents map[uint64]*auth.Identity
}

func (f *fakeUsers) byUsername(context.Context, string) (*auth.UserRecord, error) {
	return nil, nil
}

func (f *fakeUsers) byID(_ context.Context, id uint64) (*auth.Identity, error) {
	return f.idents[id], nil
}

func newTestStack(idents map[uint64]*auth.Identity) (*auth.Authenticator, *auth.TokenService) {
	store := &fakeUsers{idents: idents}
	tokens := auth.NewTokenService("mw-test-secret", time.Minute)
	a := auth.NewAuthenticator(auth.NewHasher(bcrypt.MinCost), tokens, store.byUsername, store.byID)
	return a, tokens
}

func okHandler(c echo.Context) error {
	ident, _ := CurrentIdentity(c)
	return c.JSON(http.StatusOK, echo.Map{"id": ident.ID, "role": string(ident.Role)})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	a, _ := newTestStack(nil)
	rec := doRequest(t, Authenticate(a), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	a, tokens := newTestStack(map[uint64]*auth.Identity{
		7: {ID: 7, Role: auth.RoleDeveloper, Active: true},
	})
	tok, err := tokens.Issue(7, auth.RoleDeveloper)
	require.NoError(t, err)

	rec := doRequest(t, Authenticate(a), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	assert.Contains(t, rec.Body.String(), `"role":"DEVELOPER"`)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	a, tokens := newTestStack(map[uint64]*auth.Identity{
		7: {ID: 7, Role: auth.RoleDeveloper, Active: true},
	})
	tok, err := tokens.IssueWithTTL(7, auth.RoleDeveloper, -time.Minute)
	require.NoError(t, err)

	rec := doRequest(t, Authenticate(a), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAuthenticate_DeactivatedAccount(t *testing.T) {
	a, tokens := newTestStack(map[uint64]*auth.Identity{
		7: {ID: 7, Role: auth.RoleDeveloper, Active: false},
	})
	tok, err := tokens.Issue(7, auth.RoleDeveloper)
	require.NoError(t, err)

	rec := doRequest(t, Authenticate(a), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "inactive")
}

func TestAuthenticate_UnknownSubjectLooksLikeBadToken(t *testing.T) {
	a, tokens := newTestStack(map[uint64]*auth.Identity{})
	tok, err := tokens.Issue(42, auth.RoleManager)
	require.NoError(t, err)

	recUnknown := doRequest(t, Authenticate(a), "Bearer "+tok.Token)
	recGarbage := doRequest(t, Authenticate(a), "Bearer garbage")

	// Unknown subject and malformed token share one response so callers
	// cannot probe which subject ids exist.
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, recGarbage.Body.String(), recUnknown.Body.String())
}
