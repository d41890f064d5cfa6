package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/cafe-directory/app"
	"github.com/upb/cafe-directory/config"
	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/routes"
	"go.uber.org/zap"
)

// testApp runs the full router against an in-memory database
type testApp struct {
	deps   *app.Dependencies
	server *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		Database:    config.DatabaseConfig{Path: ":memory:"},
		Session:     config.SessionConfig{Secret: "test-secret", TTL: time.Hour},
		Observability: config.ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}

	deps, err := app.NewDependencies(cfg, zap.NewNop())
	require.NoError(t, err)

	server := httptest.NewServer(routes.SetupRoutes(deps))
	t.Cleanup(server.Close)

	return &testApp{deps: deps, server: server}
}

// newClient returns a browser-like client: it keeps cookies but does not
// follow redirects, so each response can be asserted on directly.
func (a *testApp) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(a.server.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func (a *testApp) postForm(t *testing.T, client *http.Client, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.Post(a.server.URL+path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

// register creates an account through the form and leaves the session
// cookie in the client's jar
func (a *testApp) register(t *testing.T, client *http.Client, email, password string) {
	t.Helper()
	resp, _ := a.postForm(t, client, "/register", url.Values{
		"email":            {email},
		"password":         {password},
		"password_confirm": {password},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

// promote flips the stored role directly, the way an operator seeding
// the first admin would
func (a *testApp) promote(t *testing.T, email string) {
	t.Helper()
	user, err := a.deps.Users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	_, err = a.deps.Users.UpdateRole(context.Background(), user.ID, models.RoleAdmin)
	require.NoError(t, err)
}

func validCafeValues(name string) url.Values {
	return url.Values{
		"name":         {name},
		"map_url":      {"http://maps.example.com/joes"},
		"img_url":      {"http://img.example.com/joes.jpg"},
		"location":     {"central london"},
		"seats":        {"0-10"},
		"has_wifi":     {"on"},
		"coffee_price": {"2.50"},
	}
}

func TestPublicPages(t *testing.T) {
	a := newTestApp(t)
	client := a.newClient(t)

	for _, path := range []string{"/", "/cafes", "/all", "/contact", "/register", "/login", "/healthz", "/readyz", "/metrics"} {
		resp, _ := a.get(t, client, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", path)
	}

	resp, _ := a.get(t, client, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnonymousRedirects(t *testing.T) {
	a := newTestApp(t)
	client := a.newClient(t)

	for _, path := range []string{"/add", "/logout", "/messages", "/users", "/cafes/1/edit"} {
		resp, _ := a.get(t, client, path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "GET %s", path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), "GET %s", path)
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	a := newTestApp(t)
	client := a.newClient(t)

	a.register(t, client, "joe@example.com", "correct horse")

	// Registration establishes a session
	resp, _ := a.get(t, client, "/add")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.get(t, client, "/logout")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = a.get(t, client, "/add")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// Log back in
	resp, _ = a.postForm(t, client, "/login", url.Values{
		"email":    {"joe@example.com"},
		"password": {"correct horse"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = a.get(t, client, "/add")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestApp(t)
	client := a.newClient(t)
	a.register(t, client, "joe@example.com", "correct horse")
	a.get(t, client, "/logout")

	resp, body := a.postForm(t, client, "/login", url.Values{
		"email":    {"joe@example.com"},
		"password": {"wrong password"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Email or password is incorrect")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	a.register(t, a.newClient(t), "joe@example.com", "correct horse")

	resp, body := a.postForm(t, a.newClient(t), "/register", url.Values{
		"email":            {"joe@example.com"},
		"password":         {"another password"},
		"password_confirm": {"another password"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "This email is already registered")
}

func TestCafeLifecycle(t *testing.T) {
	a := newTestApp(t)
	admin := a.newClient(t)
	a.register(t, admin, "admin@example.com", "correct horse")
	a.promote(t, "admin@example.com")

	// Add: name and price are normalized before storage
	resp, _ := a.postForm(t, admin, "/add", validCafeValues("Joe's"))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/add", resp.Header.Get("Location"))

	cafe, err := a.deps.Cafes.GetByName(context.Background(), "Joe'S")
	require.NoError(t, err)
	require.NotNil(t, cafe)
	assert.Equal(t, "Central London", cafe.Location)
	assert.Equal(t, "£2.5", cafe.CoffeePrice)

	// Adding the same name again, regardless of case, is rejected
	resp, _ = a.postForm(t, admin, "/add", validCafeValues("joe's"))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	cafes, err := a.deps.CafeService.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cafes, 1)

	// Edit reformats the price
	editURL := "/cafes/" + uintString(cafe.ID) + "/edit"
	values := validCafeValues("Joe's")
	values.Set("coffee_price", "3")
	resp, _ = a.postForm(t, admin, editURL, values)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/cafes", resp.Header.Get("Location"))

	cafe, err = a.deps.Cafes.GetByID(context.Background(), cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, "£3.0", cafe.CoffeePrice)

	// Invalid submissions re-render the form with field errors
	values = validCafeValues("Joe's")
	values.Set("coffee_price", "two quid")
	resp, body := a.postForm(t, admin, editURL, values)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Coffee price must be a number")

	// Delete, twice: both redirect with the same notice
	deleteURL := "/cafes/" + uintString(cafe.ID) + "/delete"
	for i := 0; i < 2; i++ {
		resp, _ = a.get(t, admin, deleteURL)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/cafes", resp.Header.Get("Location"))
	}

	cafes, err = a.deps.CafeService.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cafes)
}

func TestNonAdminCannotModerate(t *testing.T) {
	a := newTestApp(t)
	client := a.newClient(t)
	a.register(t, client, "joe@example.com", "correct horse")

	cafe := &models.Cafe{Name: "Joe'S", MapURL: "http://maps.example.com/x", ImgURL: "http://img.example.com/x.jpg", Location: "London", Seats: "0-10", CoffeePrice: "£2.5"}
	require.NoError(t, a.deps.Cafes.Create(context.Background(), cafe))

	for _, path := range []string{
		"/cafes/" + uintString(cafe.ID) + "/edit",
		"/cafes/" + uintString(cafe.ID) + "/delete",
		"/messages",
		"/users",
	} {
		resp, _ := a.get(t, client, path)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "GET %s", path)
	}

	// The guarded handler never ran
	remaining, err := a.deps.Cafes.GetByID(context.Background(), cafe.ID)
	require.NoError(t, err)
	assert.NotNil(t, remaining)
}

func TestContactFlow(t *testing.T) {
	a := newTestApp(t)
	client := a.newClient(t)

	resp, body := a.postForm(t, client, "/contact", url.Values{
		"name":    {"Joe"},
		"message": {"hello"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "This field is required")

	resp, _ = a.postForm(t, client, "/contact", url.Values{
		"name":    {"Joe"},
		"email":   {"joe@example.com"},
		"phone":   {"+44 1234567899"},
		"message": {"Do you list cafes outside London?"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contact", resp.Header.Get("Location"))

	messages, err := a.deps.Messages.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "joe@example.com", messages[0].Email)
}

func TestRoleChangeAppliesNextRequest(t *testing.T) {
	a := newTestApp(t)

	admin := a.newClient(t)
	a.register(t, admin, "admin@example.com", "correct horse")
	a.promote(t, "admin@example.com")

	member := a.newClient(t)
	a.register(t, member, "joe@example.com", "correct horse")

	resp, _ := a.get(t, member, "/users")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	user, err := a.deps.Users.GetByEmail(context.Background(), "joe@example.com")
	require.NoError(t, err)

	// Admin promotes through the listing form
	resp, _ = a.postForm(t, admin, "/users", url.Values{
		"user_id": {user.ID.String()},
		"role":    {"admin"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/users", resp.Header.Get("Location"))

	// The existing session now carries the admin capability
	resp, _ = a.get(t, member, "/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	a := newTestApp(t)

	admin := a.newClient(t)
	a.register(t, admin, "admin@example.com", "correct horse")
	a.promote(t, "admin@example.com")

	member := a.newClient(t)
	a.register(t, member, "joe@example.com", "correct horse")

	user, err := a.deps.Users.GetByEmail(context.Background(), "joe@example.com")
	require.NoError(t, err)

	resp, _ := a.get(t, admin, "/users/"+user.ID.String()+"/delete")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// The deleted user's session no longer authenticates
	resp, _ = a.get(t, member, "/add")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
