package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"
	"github.com/opikzxx/ad-catering/utils"
)

const maxImageSize = 10 << 20 // 10 MiB

type MenuHandler struct {
	Repo       repository.MenuRepository
	Categories repository.CategoryRepository

	// Storage calls are injectable so tests run without R2.
	UploadImage func(data []byte, filename, contentType string) (url, key string, err error)
	DeleteImage func(key string) error
}

func NewMenuHandler(repo repository.MenuRepository, categories repository.CategoryRepository) *MenuHandler {
	return &MenuHandler{
		Repo:       repo,
		Categories: categories,
		UploadImage: func(data []byte, filename, contentType string) (string, string, error) {
			return utils.UploadToR2(data, "menus", filename, contentType)
		},
		DeleteImage: utils.DeleteFromR2,
	}
}

type menuReq struct {
	Name            string   `json:"name" validate:"required,min=2,max=120"`
	Description     []string `json:"description"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	DiscountedPrice *float64 `json:"discounted_price" validate:"omitempty,gte=0"`
	DiscountPercent *int     `json:"discount_percent"`
	Status          string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	ImageAlt        *string  `json:"image_alt"`
	CategoryID      int64    `json:"category_id" validate:"required,gt=0"`
}

type uploadedImage struct {
	Data        []byte
	Filename    string
	ContentType string
}

// parseMenuRequest accepts either a JSON body or multipart/form-data with an
// optional `image` field.
func parseMenuRequest(r *http.Request) (*menuReq, *uploadedImage, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req menuReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return nil, nil, err
	}

	req := &menuReq{
		Name:   r.FormValue("name"),
		Status: r.FormValue("status"),
	}
	if r.MultipartForm != nil {
		req.Description = r.MultipartForm.Value["description"]
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, err
		}
		req.Price = price
	}
	if v := r.FormValue("discounted_price"); v != "" {
		discounted, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, err
		}
		req.DiscountedPrice = &discounted
	}
	if v := r.FormValue("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		req.CategoryID = id
	}
	if v := r.FormValue("image_alt"); v != "" {
		req.ImageAlt = &v
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return nil, nil, err
	}

	imgType := header.Header.Get("Content-Type")
	if imgType == "" {
		imgType = http.DetectContentType(data)
	}

	return req, &uploadedImage{Data: data, Filename: header.Filename, ContentType: imgType}, nil
}

// CreateMenu handler. The image goes to storage first, then the row is
// written; the uploaded object is removed again when the write fails.
func (h *MenuHandler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	req, image, err := parseMenuRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if errs := utils.ValidateStruct(*req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	category, err := h.Categories.GetCategoryByID(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to validate category")
		return
	}
	if category == nil {
		writeError(w, http.StatusBadRequest, "Category does not exist")
		return
	}

	menu := &models.Menu{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Status:          req.Status,
		ImageAlt:        req.ImageAlt,
		CategoryID:      req.CategoryID,
		CategoryName:    category.Name,
	}
	menu.ApplyDiscount()

	if image != nil {
		url, key, err := h.UploadImage(image.Data, image.Filename, image.ContentType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to upload image: "+err.Error())
			return
		}
		menu.ImageURL = &url
		menu.ImageKey = &key
	}

	if err := h.Repo.CreateMenu(menu); err != nil {
		if menu.ImageKey != nil {
			if delErr := h.DeleteImage(*menu.ImageKey); delErr != nil {
				log.Printf("failed to clean up image %s after create failure: %v", *menu.ImageKey, delErr)
			}
		}
		writeError(w, http.StatusInternalServerError, "Failed to create menu")
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Menu created successfully",
		Data:    menu,
	})
}

// ListMenus handler
func (h *MenuHandler) ListMenus(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	q := r.URL.Query()

	status := q.Get("status")
	if status != "" && !models.ValidMenuStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	var categoryID int64
	if v := q.Get("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category filter")
			return
		}
		categoryID = id
	}

	list, total, err := h.Repo.ListMenus(repository.MenuListParams{
		Page:       page,
		Limit:      limit,
		Search:     q.Get("search"),
		CategoryID: categoryID,
		Status:     status,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list menus")
		return
	}
	if list == nil {
		list = []*models.Menu{}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    NewPagedData(list, page, limit, total),
	})
}

// GetMenuByID handler
func (h *MenuHandler) GetMenuByID(w http.ResponseWriter, r *http.Request, id string) {
	menuID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	menu, err := h.Repo.GetMenuByID(menuID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}
	if menu == nil {
		writeError(w, http.StatusNotFound, "Menu not found")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: menu})
}

// UpdateMenu handler. Replacing the image deletes the previous object
// best-effort once the new row state is stored.
func (h *MenuHandler) UpdateMenu(w http.ResponseWriter, r *http.Request, id string) {
	menuID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	existing, err := h.Repo.GetMenuByID(menuID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Menu not found")
		return
	}

	req, image, err := parseMenuRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if errs := utils.ValidateStruct(*req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	category, err := h.Categories.GetCategoryByID(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to validate category")
		return
	}
	if category == nil {
		writeError(w, http.StatusBadRequest, "Category does not exist")
		return
	}

	menu := &models.Menu{
		ID:              menuID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Status:          req.Status,
		ImageURL:        existing.ImageURL,
		ImageKey:        existing.ImageKey,
		ImageAlt:        req.ImageAlt,
		CategoryID:      req.CategoryID,
		CategoryName:    category.Name,
		CreatedAt:       existing.CreatedAt,
	}
	if menu.Status == "" {
		menu.Status = existing.Status
	}
	menu.ApplyDiscount()

	var oldKey *string
	if image != nil {
		url, key, err := h.UploadImage(image.Data, image.Filename, image.ContentType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to upload image: "+err.Error())
			return
		}
		oldKey = existing.ImageKey
		menu.ImageURL = &url
		menu.ImageKey = &key
	}

	if err := h.Repo.UpdateMenu(menu); err != nil {
		if image != nil && menu.ImageKey != nil {
			if delErr := h.DeleteImage(*menu.ImageKey); delErr != nil {
				log.Printf("failed to clean up image %s after update failure: %v", *menu.ImageKey, delErr)
			}
		}
		if err == repository.ErrNotFound {
			writeError(w, http.StatusNotFound, "Menu not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update menu")
		return
	}

	if oldKey != nil {
		if err := h.DeleteImage(*oldKey); err != nil {
			log.Printf("failed to delete replaced image %s: %v", *oldKey, err)
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Menu updated successfully",
		Data:    menu,
	})
}

// DeleteMenu handler. The stored image is removed best-effort; a storage
// failure never blocks the menu deletion.
func (h *MenuHandler) DeleteMenu(w http.ResponseWriter, r *http.Request, id string) {
	menuID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu ID")
		return
	}

	menu, err := h.Repo.GetMenuByID(menuID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}
	if menu == nil {
		writeError(w, http.StatusNotFound, "Menu not found")
		return
	}

	if err := h.Repo.DeleteMenu(menuID); err != nil {
		if err == repository.ErrNotFound {
			writeError(w, http.StatusNotFound, "Menu not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete menu")
		return
	}

	if menu.ImageKey != nil {
		if err := h.DeleteImage(*menu.ImageKey); err != nil {
			log.Printf("failed to delete image %s for menu %d: %v", *menu.ImageKey, menuID, err)
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Menu deleted successfully",
	})
}
