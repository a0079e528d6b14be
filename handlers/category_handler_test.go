package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opikzxx/ad-catering/models"
)

func newCategoryHandler() (*CategoryHandler, *fakeCategoryRepo) {
	repo := newFakeCategoryRepo()
	return &CategoryHandler{Repo: repo}, repo
}

func seedCategory(t *testing.T, repo *fakeCategoryRepo, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	if err := repo.CreateCategory(c); err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return c
}

func TestCreateCategory(t *testing.T) {
	h, repo := newCategoryHandler()

	rec := postJSON(t, h.CreateCategory, "/api/admin/categories", `{"name":"Nasi Box"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if len(repo.categories) != 1 {
		t.Fatalf("stored categories = %d, want 1", len(repo.categories))
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	h, repo := newCategoryHandler()
	seedCategory(t, repo, "Nasi Box")

	rec := postJSON(t, h.CreateCategory, "/api/admin/categories", `{"name":"Nasi Box"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(repo.categories) != 1 {
		t.Fatalf("stored categories = %d, want 1", len(repo.categories))
	}
}

func TestCreateCategory_NameTooShort(t *testing.T) {
	h, _ := newCategoryHandler()

	rec := postJSON(t, h.CreateCategory, "/api/admin/categories", `{"name":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if _, ok := resp.Errors["name"]; !ok {
		t.Fatalf("expected a name field error, got %v", resp.Errors)
	}
}

func TestListCategories_PaginationAndSearch(t *testing.T) {
	h, repo := newCategoryHandler()
	for _, name := range []string{"Snack Box", "Nasi Box", "Buffet", "Nasi Tumpeng"} {
		seedCategory(t, repo, name)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories?search=nasi&page=1&limit=1", nil)
	rec := httptest.NewRecorder()
	h.ListCategories(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool      `json:"success"`
		Data    PagedData `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Data.Total)
	}
	if resp.Data.Pages != 2 {
		t.Errorf("pages = %d, want 2", resp.Data.Pages)
	}
	items, ok := resp.Data.Items.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("items = %v, want exactly 1 entry", resp.Data.Items)
	}
}

func TestGetCategoryByID_NotFound(t *testing.T) {
	h, _ := newCategoryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories/99", nil)
	rec := httptest.NewRecorder()
	h.GetCategoryByID(rec, req, "99")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetCategoryByID_InvalidID(t *testing.T) {
	h, _ := newCategoryHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories/abc", nil)
	rec := httptest.NewRecorder()
	h.GetCategoryByID(rec, req, "abc")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateCategory(t *testing.T) {
	h, repo := newCategoryHandler()
	c := seedCategory(t, repo, "Snack Box")

	req := httptest.NewRequest(http.MethodPut, "/api/admin/categories/1", strings.NewReader(`{"name":"Snack Platter"}`))
	rec := httptest.NewRecorder()
	h.UpdateCategory(rec, req, "1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	updated, _ := repo.GetCategoryByID(c.ID)
	if updated.Name != "Snack Platter" {
		t.Fatalf("name = %q, want Snack Platter", updated.Name)
	}
}

func TestDeleteCategory_WithMenusRejected(t *testing.T) {
	h, repo := newCategoryHandler()
	c := seedCategory(t, repo, "Nasi Box")
	repo.menuCounts[c.ID] = 3

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/categories/1", nil)
	rec := httptest.NewRecorder()
	h.DeleteCategory(rec, req, "1")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	still, _ := repo.GetCategoryByID(c.ID)
	if still == nil {
		t.Fatal("category was deleted despite owning menus")
	}
}

func TestDeleteCategory_EmptySucceeds(t *testing.T) {
	h, repo := newCategoryHandler()
	c := seedCategory(t, repo, "Buffet")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/categories/1", nil)
	rec := httptest.NewRecorder()
	h.DeleteCategory(rec, req, "1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	gone, _ := repo.GetCategoryByID(c.ID)
	if gone != nil {
		t.Fatal("category still present after delete")
	}
}
