package httpapi_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linkarchive/internal/logging"
	"linkarchive/internal/server/auth"
	"linkarchive/internal/server/httpapi"
	"linkarchive/internal/server/models"
	"linkarchive/internal/server/render"
	"linkarchive/internal/server/repositories/repomanager"
	"linkarchive/internal/server/services"
)

const (
	testSecret     = "test-secret"
	testServerName = "archive-test"
)

type testServer struct {
	router http.Handler
	repos  *repomanager.SQLiteRepositoryManager
	users  *services.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	repos, err := repomanager.NewSQLiteRepositoryManager(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	provider := auth.NewEmbeddedProvider([]byte(testSecret), testServerName, time.Hour, repos.Users(), logger)

	renderer, err := render.New()
	require.NoError(t, err)

	handler := httpapi.NewHandler(logger, provider, services.NewLinkService(repos.Links()), renderer)

	return &testServer{
		router: httpapi.NewRouter(handler, logger),
		repos:  repos,
		users:  services.NewUserService(repos.Users()),
	}
}

func (ts *testServer) createUser(t *testing.T, name, password string) *models.User {
	t.Helper()
	user, err := ts.users.Create(context.Background(), name, []byte(password))
	require.NoError(t, err)
	return user
}

func (ts *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// login performs the form login and returns the session cookie set on the
// redirect.
func (ts *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	rec := ts.postForm("/api/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/api/users/self/links", rec.Result().Header.Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == httpapi.CookieName {
			return c
		}
	}
	t.Fatalf("no session cookie in login response")
	return nil
}

func TestLoginPage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/login", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "password")
}

func TestLoginThenListLinks(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")

	cookie := ts.login(t, "alice", "pw1")

	rec := ts.get("/api/users/self/links", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alice")
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")

	rec := ts.postForm("/api/login", url.Values{
		"username": {"alice"},
		"password": {"wrongpw"},
	}, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	for _, c := range rec.Result().Cookies() {
		require.NotEqual(t, httpapi.CookieName, c.Name, "failed login must not set a session cookie")
	}
}

func TestLinks_OtherUsersListForbidden(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")
	bob := ts.createUser(t, "bob", "pw2")

	cookie := ts.login(t, "alice", "pw1")

	rec := ts.get(fmt.Sprintf("/api/users/%d/links", bob.ID), cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLinks_OwnIDEqualsSelf(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.createUser(t, "alice", "pw1")

	cookie := ts.login(t, "alice", "pw1")

	bySelf := ts.get("/api/users/self/links", cookie)
	byID := ts.get(fmt.Sprintf("/api/users/%d/links", alice.ID), cookie)

	require.Equal(t, http.StatusOK, bySelf.Code)
	require.Equal(t, http.StatusOK, byID.Code)
	require.Equal(t, bySelf.Body.String(), byID.Body.String())
}

func TestLinks_ExpiredTokenLooksLikeMissingCookie(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.createUser(t, "alice", "pw1")

	expired, err := auth.IssueToken(auth.ClaimSpec{
		Issuer:   testServerName,
		Audience: testServerName,
		Subject:  fmt.Sprint(alice.ID),
		Version:  alice.TokenVersion,
	}, []byte(testSecret), -1*time.Second)
	require.NoError(t, err)

	withExpired := ts.get("/api/users/self/links", &http.Cookie{Name: httpapi.CookieName, Value: expired})
	withoutCookie := ts.get("/api/users/self/links", nil)

	require.Equal(t, http.StatusUnauthorized, withExpired.Code)
	require.Equal(t, http.StatusUnauthorized, withoutCookie.Code)
	require.Equal(t, withoutCookie.Body.String(), withExpired.Body.String())
}

func TestLinks_ForgedTokenRejected(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.createUser(t, "alice", "pw1")

	forged, err := auth.IssueToken(auth.ClaimSpec{
		Issuer:   testServerName,
		Audience: testServerName,
		Subject:  fmt.Sprint(alice.ID),
		Version:  alice.TokenVersion,
	}, []byte("some-other-secret"), time.Hour)
	require.NoError(t, err)

	rec := ts.get("/api/users/self/links", &http.Cookie{Name: httpapi.CookieName, Value: forged})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostLinks_ImportAndRender(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")
	cookie := ts.login(t, "alice", "pw1")

	rec := ts.postForm("/api/users/self/links", url.Values{
		"links": {"http://one.example/\nhttp://two.example/"},
	}, cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http://one.example/")
	require.Contains(t, rec.Body.String(), "http://two.example/")
}

func TestPostLinks_InvalidLine(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")
	cookie := ts.login(t, "alice", "pw1")

	rec := ts.postForm("/api/users/self/links", url.Values{
		"links": {"not a url\nhttp://ok.example/"},
	}, cookie)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid url: not a url")

	// The line after the invalid one was not committed.
	list := ts.get("/api/users/self/links", cookie)
	require.NotContains(t, list.Body.String(), "ok.example")
}

func TestPostLinks_ResubmitIsNoOp(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")
	cookie := ts.login(t, "alice", "pw1")

	first := ts.postForm("/api/users/self/links", url.Values{"links": {"http://one.example/"}}, cookie)
	require.Equal(t, http.StatusOK, first.Code)

	again := ts.postForm("/api/users/self/links", url.Values{"links": {"http://one.example/"}}, cookie)
	require.Equal(t, http.StatusOK, again.Code)
	require.Equal(t, 1, strings.Count(again.Body.String(), `href="http://one.example/"`))
}

func TestLinks_BadTargetSegment(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")
	cookie := ts.login(t, "alice", "pw1")

	rec := ts.get("/api/users/somebody/links", cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", "pw1")
	cookie := ts.login(t, "alice", "pw1")

	rec := ts.postForm("/api/logout", nil, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/api/login", rec.Result().Header.Get("Location"))

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpapi.CookieName {
			require.Empty(t, c.Value)
			require.Negative(t, c.MaxAge)
			cleared = true
		}
	}
	require.True(t, cleared, "logout must re-issue the session cookie expired")
}
