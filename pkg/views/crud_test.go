package views

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-crudgen/pkg/repository"
)

type Article struct {
	bun.BaseModel `bun:"table:articles"`

	ID     int64  `bun:"id,pk,autoincrement"`
	Title  string `bun:"title,notnull"`
	Reads  int    `bun:"reads"`
	Draft  bool   `bun:"draft"`
	Author string `bun:"author"`
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = db.NewCreateTable().Model((*Article)(nil)).Exec(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestApp(t *testing.T, options ...CRUDOption) (*fiber.App, *CRUD[Article], *bun.DB) {
	t.Helper()

	db := newTestDB(t)
	view, err := NewView()
	require.NoError(t, err)

	crud, err := NewCRUD[Article](view, db, options...)
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, crud.Mount(app, "/admin"))
	return app, crud, db
}

func seedArticles(t *testing.T, db *bun.DB, count int) {
	t.Helper()
	repo := repository.New[Article](db)
	for i := 1; i <= count; i++ {
		article := &Article{
			Title:  fmt.Sprintf("Article %02d", i),
			Reads:  i * 5,
			Author: "alice",
		}
		require.NoError(t, repo.Insert(context.Background(), article))
	}
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func ajax(req *http.Request) *http.Request {
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return req
}

func TestListPage(t *testing.T) {
	app, _, db := newTestApp(t, WithPageSize(3))
	seedArticles(t, db, 5)

	req := httptest.NewRequest(http.MethodGet, "/admin/article", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Article 01")
	assert.Contains(t, body, "Article 03")
	assert.NotContains(t, body, "Article 04")
	assert.Contains(t, body, "1 / 2")
	assert.Contains(t, body, "?page=2")
	assert.Contains(t, body, "/admin/article/create")
	assert.Contains(t, body, `<th>Actions</th>`)
	assert.Contains(t, body, "detail-ajax")
	assert.Contains(t, body, "delete-ajax")
}

func TestListNonNumericPage(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/article?page=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPageBelowOne(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	for _, page := range []string{"0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/article?page="+page, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "page=%s", page)
	}
}

func TestListPastEndClampsToLastPage(t *testing.T) {
	app, _, db := newTestApp(t, WithPageSize(2))
	seedArticles(t, db, 5)

	req := httptest.NewRequest(http.MethodGet, "/admin/article?page=40", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "Article 05")
	assert.Contains(t, body, "3 / 3")
}

func TestListSort(t *testing.T) {
	app, _, db := newTestApp(t, WithPageSize(2))
	seedArticles(t, db, 4)

	req := httptest.NewRequest(http.MethodGet, "/admin/article?sort=reads&order=desc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "Article 04")
	assert.Contains(t, body, "Article 03")
	assert.NotContains(t, body, "Article 01")
	assert.Contains(t, body, "?sort=reads&order=asc")
}

func TestListUnknownSortIgnored(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 2)

	req := httptest.NewRequest(http.MethodGet, "/admin/article?sort=nope;drop", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListEmpty(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/article", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "No data available")
}

func TestDetailPage(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/article/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "Article 1")
	assert.Contains(t, body, "Article 01")
	assert.Contains(t, body, "/admin/article/1/update")
	assert.Contains(t, body, "/admin/article/1/delete")
}

func TestDetailAJAX(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := ajax(httptest.NewRequest(http.MethodGet, "/admin/article/1", nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Title string `json:"title"`
		HTML  string `json:"html"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Article 1", payload.Title)
	assert.Contains(t, payload.HTML, `<ul class="list-unstyled">`)
	assert.Contains(t, payload.HTML, "Article 01")
}

func TestDetailNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, path := range []string{"/admin/article/99", "/admin/article/abc"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestCreateForm(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/article/create", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "Create Article")
	assert.Contains(t, body, `name="title"`)
	assert.NotContains(t, body, `name="id"`)
}

func TestCreateSubmit(t *testing.T) {
	app, _, db := newTestApp(t)

	resp, err := app.Test(formRequest("/admin/article/create", url.Values{
		"title":  {"Fresh"},
		"reads":  {"12"},
		"draft":  {"on"},
		"author": {"bob"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/article/1", resp.Header.Get("Location"))

	stored, err := repository.New[Article](db).Get(context.Background(), "id", 1)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", stored.Title)
	assert.Equal(t, 12, stored.Reads)
	assert.True(t, stored.Draft)
}

func TestCreateInvalidInput(t *testing.T) {
	app, _, db := newTestApp(t)

	resp, err := app.Test(formRequest("/admin/article/create", url.Values{
		"title": {"Broken"},
		"reads": {"not-a-number"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "invalid value")

	total, err := repository.New[Article](db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestUpdateSubmit(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/article/1/update", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	form := bodyOf(t, resp)
	assert.Contains(t, form, "Submit Article")
	assert.Contains(t, form, `value="Article 01"`)

	resp, err = app.Test(formRequest("/admin/article/1/update", url.Values{
		"title":  {"Renamed"},
		"reads":  {"99"},
		"author": {"carol"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/article/1", resp.Header.Get("Location"))

	stored, err := repository.New[Article](db).Get(context.Background(), "id", 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, 99, stored.Reads)
}

func TestDeleteConfirmPage(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/article/1/delete", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "Are you sure you want to delete Article 1?")
}

func TestDeleteAJAXConfirm(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := ajax(httptest.NewRequest(http.MethodGet, "/admin/article/1/delete", nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Delete Article", payload["title"])
	assert.Equal(t, "Are you sure you want to delete Article 1?", payload["message"])
}

func TestDeleteAJAXConfirmMissing(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := ajax(httptest.NewRequest(http.MethodGet, "/admin/article/99/delete", nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAJAXSubmit(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 1)

	req := ajax(httptest.NewRequest(http.MethodPost, "/admin/article/1/delete", nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Deleted successfully", payload["message"])

	total, err := repository.New[Article](db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestDeleteAJAXSubmitMissing(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := ajax(httptest.NewRequest(http.MethodPost, "/admin/article/7/delete", nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Error deleting", payload["message"])
}

func TestDeleteSubmitRedirects(t *testing.T) {
	app, _, db := newTestApp(t)
	seedArticles(t, db, 2)

	resp, err := app.Test(formRequest("/admin/article/2/delete", url.Values{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/article", resp.Header.Get("Location"))

	total, err := repository.New[Article](db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestMountRestrictedActions(t *testing.T) {
	db := newTestDB(t)
	view, err := NewView()
	require.NoError(t, err)

	crud, err := NewCRUD[Article](view, db,
		WithActions("list", "detail"),
		WithListActions())
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, crud.Mount(app, "/admin"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/article/create", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.True(t, view.Resolver().Has("article_list"))
	assert.False(t, view.Resolver().Has("article_create"))
}

func TestNewCRUDUnknownColumn(t *testing.T) {
	db := newTestDB(t)
	view, err := NewView()
	require.NoError(t, err)

	_, err = NewCRUD[Article](view, db, WithListColumns("title", "ghost"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
