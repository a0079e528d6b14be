package routes

import (
	"net/http"
	"strings"

	"github.com/opikzxx/ad-catering/handlers"
	"github.com/opikzxx/ad-catering/middleware"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	menuHandler *handlers.MenuHandler,
	publicHandler *handlers.PublicHandler,
	pdfHandler *handlers.CatalogPDFHandler,
	adminAuth *middleware.AdminAuth,
) *http.ServeMux {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, withCORS(http.HandlerFunc(handlers.RecoverWrapper(h))))
	}

	// Auth routes
	handle("/api/auth/register", authHandler.Register)
	handle("/api/auth/login", authHandler.Login)
	handle("/api/auth/session", authHandler.Session)

	// Public catalogue
	handle("/api/public/menu", publicHandler.Menu)

	// Admin category routes
	handle("/api/admin/categories", adminAuth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categoryHandler.ListCategories(w, r)
		case http.MethodPost:
			categoryHandler.CreateCategory(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	handle("/api/admin/categories/", adminAuth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/admin/categories/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			categoryHandler.GetCategoryByID(w, r, id)
		case http.MethodPut:
			categoryHandler.UpdateCategory(w, r, id)
		case http.MethodDelete:
			categoryHandler.DeleteCategory(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Admin menu routes
	handle("/api/admin/menus", adminAuth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			menuHandler.ListMenus(w, r)
		case http.MethodPost:
			menuHandler.CreateMenu(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	handle("/api/admin/menus/", adminAuth.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/admin/menus/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			menuHandler.GetMenuByID(w, r, id)
		case http.MethodPut:
			menuHandler.UpdateMenu(w, r, id)
		case http.MethodDelete:
			menuHandler.DeleteMenu(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Catalogue PDF export
	handle("/api/admin/catalog/pdf", adminAuth.RequireAdmin(pdfHandler.CatalogPDF))

	return mux
}
