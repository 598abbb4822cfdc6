package usersserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shop-users-api/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/shop-users-api/internal/domains/users/application"
	userdomain "github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/shared/links"
)

const (
	testBaseURL = "http://shop.test"
	testPrefix  = "/api/v1"
	testToken   = "tok-123"
)

type testApp struct {
	router *gin.Engine
	repo   *memory.Repository
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	builder, err := links.NewBuilder(testBaseURL, testPrefix)
	require.NoError(t, err)
	repo := memory.NewRepository()
	svc := userapp.NewService(repo, userapp.WithTokenGenerator(func() string { return testToken }))
	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{UserAPI: NewUserAPI(svc, builder)}, testPrefix)
	return testApp{router: router, repo: repo}
}

func (a testApp) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a testApp) seed(t *testing.T, first, last string) *userdomain.User {
	t.Helper()
	user, err := userdomain.NewUser(first, last, strings.ToLower(first)+"@example.com")
	require.NoError(t, err)
	require.NoError(t, user.IssueActivationToken(testToken))
	saved, err := a.repo.Save(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func TestUserAPI_CreateFetchActivateScenario(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/users", map[string]string{
		"firstName": "Ann",
		"lastName":  "Kowalska",
		"email":     "a@x.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, testBaseURL+"/api/v1/users/"))
	path := strings.TrimPrefix(location, testBaseURL)
	var id int64
	_, err := fmt.Sscanf(path, "/api/v1/users/%d", &id)
	require.NoError(t, err)

	rec = app.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, id, fetched.Id)
	assert.Equal(t, "Ann", fetched.FirstName)
	assert.Equal(t, "Kowalska", fetched.LastName)
	assert.Equal(t, "a@x.com", fetched.Email)
	assert.False(t, fetched.Active)
	assert.Equal(t, location, fetched.Links.Self.Href)
	assert.NotContains(t, rec.Body.String(), testToken)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/not-active/%d?token=%s", id, testToken), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.True(t, fetched.Active)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/not-active/%d?token=%s", id, testToken), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUserAPI_CreateValidation(t *testing.T) {
	app := newTestApp(t)
	cases := map[string]any{
		"missing email":    map[string]string{"firstName": "Ann", "lastName": "Kowalska"},
		"malformed email":  map[string]string{"firstName": "Ann", "lastName": "Kowalska", "email": "nope"},
		"blank first name": map[string]string{"firstName": "   ", "lastName": "Kowalska", "email": "a@x.com"},
		"not an object":    []string{"Ann"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/v1/users", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, rec.Header().Get("Location"))
		})
	}
}

func TestUserAPI_ActivateErrors(t *testing.T) {
	app := newTestApp(t)
	user := app.seed(t, "Ann", "Kowalska")

	rec := app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/not-active/%d?token=wrong", user.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	stored, err := app.repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	rec = app.do(t, http.MethodGet, "/api/v1/users/not-active/999?token=x", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "User with identifier '999' not found", problem["detail"])
	assert.Equal(t, testBaseURL+"/api/v1/users/999", problem["instance"])

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/not-active/%d", user.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/users/not-active/abc?token=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserAPI_GetUserErrors(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/users/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/problems/not-found", problem["type"])
	assert.Equal(t, "User with identifier '42' not found", problem["detail"])
	assert.Equal(t, testBaseURL+"/api/v1/users/42", problem["instance"])

	rec = app.do(t, http.MethodGet, "/api/v1/users/forty-two", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserAPI_SearchPaging(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 12; i++ {
		app.seed(t, fmt.Sprintf("User%d", i), fmt.Sprintf("Goldsmith-%02d", i))
	}
	app.seed(t, "Jan", "Nowak")

	rec := app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=smith", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page UserPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 0, page.PageNumber)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, testBaseURL+"/api/v1/users/1", page.Items[0].Links.Self.Href)

	rec = app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=smith&pageNumber=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "Goldsmith-11", page.Items[1].LastName)

	rec = app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=zzz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"pageNumber":0,"totalPages":0}`, rec.Body.String())
}

func TestUserAPI_SearchValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/problems/validation-error", problem["type"])

	rec = app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=a&pageSize=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=a&pageNumber=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=a&pageNumber=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserAPI_SearchRejectsOutOfRangePages(t *testing.T) {
	app := newTestApp(t)
	for _, first := range []string{"Adam", "Beth", "Carl"} {
		app.seed(t, first, "Smith")
	}

	targets := []string{
		"/api/v1/users?lastNameFragment=Smith&pageNumber=4611686018427387905&pageSize=2",
		"/api/v1/users?lastNameFragment=Smith&pageNumber=4611686018427387904&pageSize=4",
		"/api/v1/users?lastNameFragment=Smith&pageSize=101",
	}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, target, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var problem map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, "/problems/validation-error", problem["type"])
		})
	}

	rec := app.do(t, http.MethodGet, "/api/v1/users?lastNameFragment=Smith&pageSize=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPages":1`)
}
