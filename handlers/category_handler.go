package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"
	"github.com/opikzxx/ad-catering/utils"
)

type CategoryHandler struct {
	Repo repository.CategoryRepository
}

type categoryReq struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// ListCategories handler
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	list, total, err := h.Repo.ListCategories(repository.CategoryListParams{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	if list == nil {
		list = []*models.Category{}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    NewPagedData(list, page, limit, total),
	})
}

// CreateCategory handler
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	category := &models.Category{Name: req.Name}
	if err := h.Repo.CreateCategory(category); err != nil {
		if err == repository.ErrDuplicateName {
			writeError(w, http.StatusBadRequest, "Category name already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// GetCategoryByID handler
func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request, id string) {
	categoryID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.Repo.GetCategoryByID(categoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: category})
}

// UpdateCategory handler
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request, id string) {
	categoryID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	category := &models.Category{ID: categoryID, Name: req.Name}
	if err := h.Repo.UpdateCategory(category); err != nil {
		switch err {
		case repository.ErrNotFound:
			writeError(w, http.StatusNotFound, "Category not found")
		case repository.ErrDuplicateName:
			writeError(w, http.StatusBadRequest, "Category name already exists")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory handler. A category that still owns menus is not deletable.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	categoryID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.Repo.DeleteCategory(categoryID); err != nil {
		switch err {
		case repository.ErrNotFound:
			writeError(w, http.StatusNotFound, "Category not found")
		case repository.ErrCategoryNotEmpty:
			writeError(w, http.StatusBadRequest, "Category still has menus and cannot be deleted")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Category deleted successfully",
	})
}
