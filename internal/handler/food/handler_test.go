package food

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foodModel "github.com/zhouzirui/food-catalog/backend/internal/model/food"
	"github.com/zhouzirui/food-catalog/backend/internal/service/catalog"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func setupRouter(items []foodModel.Item) *chi.Mux {
	svc := catalog.NewService(foodModel.NewMemoryStore(items), nil)
	handler := New(svc, nil, Limits{DefaultPageSize: 10, MaxPageSize: 100})

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func twoItems() []foodModel.Item {
	return []foodModel.Item{
		{Name: "Bananas", Price: 80, Description: "Fresh yellow bananas from Ecuador"},
		{Name: "Apples", Price: 120, Description: "Red Golden apples"},
	}
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	return resp, env
}

func errorText(env envelope) string {
	if env.Error == nil {
		return ""
	}
	return *env.Error
}

func decodePage(t *testing.T, env envelope) foodModel.Page {
	t.Helper()
	var page foodModel.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	return page
}

func TestListDefaults(t *testing.T) {
	r := setupRouter(foodModel.Seed())

	resp, env := do(t, r, http.MethodGet, "/food", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	page := decodePage(t, env)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 1, page.Pages)
	assert.Len(t, page.Items, 7)
}

func TestListSecondPageOfOne(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodGet, "/food?page=2&size=1", "")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Apples", page.Items[0].Name)
	assert.Equal(t, foodModel.Page{Items: page.Items, Total: 2, Page: 2, Size: 1, Pages: 2}, page)
}

func TestListFilters(t *testing.T) {
	r := setupRouter(twoItems())

	_, env := do(t, r, http.MethodGet, "/food?min_price=100", "")
	page := decodePage(t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Apples", page.Items[0].Name)

	_, env = do(t, r, http.MethodGet, "/food?search=an", "")
	page = decodePage(t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bananas", page.Items[0].Name)
}

func TestListEmptyResultJSON(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodGet, "/food?name=durian&page=3", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"size":10,"pages":0}`, string(env.Data))
}

func TestListRejectsBadQuery(t *testing.T) {
	r := setupRouter(twoItems())

	for _, target := range []string{
		"/food?page=0",
		"/food?page=abc",
		"/food?size=0",
		"/food?size=101",
		"/food?min_price=-1",
		"/food?max_price=NaN",
		"/food?min_price=100&max_price=50",
	} {
		resp, env := do(t, r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, resp.Code, target)
		assert.False(t, env.Success, target)
		assert.NotEmpty(t, errorText(env), target)
	}
}

func TestGetItem(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodGet, "/food/2", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var item foodModel.Item
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, 2, item.ID)
	assert.Equal(t, "Apples", item.Name)
	assert.Contains(t, string(env.Data), `"created_at"`)
	assert.Contains(t, string(env.Data), `"updated_at"`)

	resp, env = do(t, r, http.MethodGet, "/food/99", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.False(t, env.Success)

	resp, _ = do(t, r, http.MethodGet, "/food/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestNonPositiveIDIsNotFound(t *testing.T) {
	r := setupRouter(twoItems())

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/food/0", ""},
		{http.MethodGet, "/food/-1", ""},
		{http.MethodPatch, "/food/0", `{"price":5}`},
		{http.MethodDelete, "/food/-3", ""},
	} {
		resp, env := do(t, r, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.Code, tc.target)
		assert.Equal(t, "food item not found", errorText(env), tc.target)
	}
}

func TestCreateItem(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodPost, "/food", `{"name":"  Kiwi ","price":95.5,"description":" Green kiwi "}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var item foodModel.Item
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, 3, item.ID)
	assert.Equal(t, "Kiwi", item.Name)
	assert.Equal(t, "Green kiwi", item.Description)
	assert.Equal(t, 95.5, item.Price)
}

func TestCreateDuplicateName(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodPost, "/food", `{"name":"bananas","price":1,"description":"dup"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, errorText(env), "already exists")

	_, env = do(t, r, http.MethodGet, "/food", "")
	assert.Equal(t, 2, decodePage(t, env).Total)
}

func TestCreateValidation(t *testing.T) {
	r := setupRouter(nil)

	for _, body := range []string{
		``,
		`not json`,
		`{"price":1,"description":"d"}`,
		`{"name":"x","description":"d"}`,
		`{"name":"x","price":1}`,
		`{"name":"   ","price":1,"description":"d"}`,
		`{"name":"x","price":0,"description":"d"}`,
		`{"name":"x","price":-3,"description":"d"}`,
		`{"name":"x","price":1,"description":""}`,
		`{"name":"` + strings.Repeat("a", 101) + `","price":1,"description":"d"}`,
		`{"name":"x","price":1,"description":"` + strings.Repeat("d", 501) + `"}`,
		`{"name":"x","price":1,"description":"d","extra":true}`,
	} {
		resp, env := do(t, r, http.MethodPost, "/food", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, body)
		assert.False(t, env.Success, body)
	}
}

func TestPatchItem(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodPatch, "/food/1", `{"price":85}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var item foodModel.Item
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Bananas", item.Name)
	assert.Equal(t, 85.0, item.Price)
	assert.Equal(t, "Fresh yellow bananas from Ecuador", item.Description)
	assert.False(t, item.UpdatedAt.Before(item.CreatedAt))
}

func TestPatchEmptyBodyObject(t *testing.T) {
	r := setupRouter(twoItems())

	resp, _ := do(t, r, http.MethodPatch, "/food/1", `{}`)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestPatchErrors(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodPatch, "/food/1", `{"name":"APPLES"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, errorText(env), "already exists")

	resp, _ = do(t, r, http.MethodPatch, "/food/42", `{"name":"Kiwi"}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp, _ = do(t, r, http.MethodPatch, "/food/1", `{"price":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp, _ = do(t, r, http.MethodPatch, "/food/1", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteItem(t *testing.T) {
	r := setupRouter(twoItems())

	resp, env := do(t, r, http.MethodDelete, "/food/1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `true`, string(env.Data))

	resp, env = do(t, r, http.MethodDelete, "/food/1", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.False(t, env.Success)

	_, env = do(t, r, http.MethodGet, "/food", "")
	assert.Equal(t, 1, decodePage(t, env).Total)
}
