package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-website/portfolio-server/internal/api/http/view"
	"github.com/portfolio-website/portfolio-server/internal/assets"
	"github.com/portfolio-website/portfolio-server/internal/markdown"
	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
	"github.com/portfolio-website/portfolio-server/internal/projects/service"
)

type fakeStore struct {
	items []domain.Project
	err   error
}

func (f *fakeStore) List(context.Context) ([]domain.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Project(nil), f.items...), nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*domain.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.items {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

type observed struct {
	operation, kind string
}

func setupRouter(t *testing.T, store service.ProjectStore) (*gin.Engine, *[]observed) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := view.LoadTemplates()
	require.NoError(t, err)

	svc := service.NewProjectService(
		store,
		markdown.NewRenderer(),
		assets.NewResolver("https://storage.googleapis.com", "portfolio-website-images"),
	)

	var seen []observed
	h := New(svc, func(op, kind string) { seen = append(seen, observed{op, kind}) })

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	h.RegisterPages(r)
	h.RegisterAPI(r.Group("/api/v1"))
	return r, &seen
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

var sample = []domain.Project{
	{
		ID:                "weather-bot",
		Title:             "Weather Bot",
		Summary:           "Posts the forecast",
		ImageURL:          "bot.png",
		LongDescriptionMD: "## Overview\n\nSee https://example.com\n\n<script>alert(1)</script>",
		Tags:              []string{"go"},
	},
	{ID: "no-image", Title: "Plain Project", Summary: "No picture"},
}

func TestList(t *testing.T) {
	r, _ := setupRouter(t, &fakeStore{items: sample})

	rr := get(r, "/projects")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Weather Bot")
	assert.Contains(t, body, "Plain Project")
	assert.Contains(t, body, `src="https://storage.googleapis.com/portfolio-website-images/bot.png"`)
	assert.Contains(t, body, `href="/projects/weather-bot"`)
	assert.NotContains(t, body, "alert alert-danger")
}

func TestList_StoreOutage(t *testing.T) {
	r, seen := setupRouter(t, &fakeStore{err: errors.New("connection refused")})

	rr := get(r, "/projects")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Could not load projects at this time.")
	assert.Contains(t, body, "No projects to show yet.")
	assert.NotContains(t, body, "connection refused")
	assert.Equal(t, []observed{{"list", "unavailable"}}, *seen)
}

func TestDetail(t *testing.T) {
	r, _ := setupRouter(t, &fakeStore{items: sample})

	rr := get(r, "/projects/weather-bot")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<h1>Weather Bot</h1>")
	assert.Contains(t, body, "<h2>Overview</h2>")
	assert.Contains(t, body, `<a href="https://example.com" rel="nofollow">https://example.com</a>`)
	assert.NotContains(t, body, "alert(1)")
	assert.Contains(t, body, `src="https://storage.googleapis.com/portfolio-website-images/bot.png"`)
}

func TestDetail_NoImage(t *testing.T) {
	r, _ := setupRouter(t, &fakeStore{items: sample})

	rr := get(r, "/projects/no-image")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "img-fluid")
}

func TestDetail_NotFoundRedirects(t *testing.T) {
	r, seen := setupRouter(t, &fakeStore{items: sample})

	rr := get(r, "/projects/missing")

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/projects", rr.Header().Get("Location"))
	assert.Equal(t, []observed{{"get", "not_found"}}, *seen)

	next := get(r, "/projects", rr.Result().Cookies()...)
	require.Equal(t, http.StatusOK, next.Code)
	assert.Contains(t, next.Body.String(), `class="alert alert-warning"`)
	assert.Contains(t, next.Body.String(), "Project not found.")

	// notices are shown once
	again := get(r, "/projects", next.Result().Cookies()...)
	assert.NotContains(t, again.Body.String(), "Project not found.")
}

func TestDetail_StoreOutageRedirects(t *testing.T) {
	r, _ := setupRouter(t, &fakeStore{err: errors.New("deadline exceeded")})

	rr := get(r, "/projects/weather-bot")

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/projects", rr.Header().Get("Location"))

	next := get(r, "/projects", rr.Result().Cookies()...)
	assert.Contains(t, next.Body.String(), "Could not load the project at this time.")
}

func TestAPI(t *testing.T) {
	r, _ := setupRouter(t, &fakeStore{items: sample})

	t.Run("list", func(t *testing.T) {
		rr := get(r, "/api/v1/projects")
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			OK       bool                 `json:"ok"`
			Projects []domain.ProjectView `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.OK)
		require.Len(t, body.Projects, 2)
		assert.Equal(t, "https://storage.googleapis.com/portfolio-website-images/bot.png", body.Projects[0].ImageURL)
	})

	t.Run("get", func(t *testing.T) {
		rr := get(r, "/api/v1/projects/weather-bot")
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Project domain.ProjectView `json:"project"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Contains(t, string(body.Project.LongDescriptionHTML), "<h2>Overview</h2>")
	})

	t.Run("not found", func(t *testing.T) {
		rr := get(r, "/api/v1/projects/missing")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAPI_StoreOutage(t *testing.T) {
	r, _ := setupRouter(t, &fakeStore{err: errors.New("boom")})

	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/v1/projects").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/api/v1/projects/x").Code)
}
