// Ovenbook - back office for home bakeries
// Entry point for the web server
package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lilybakes/ovenbook/internal/config"
	"github.com/lilybakes/ovenbook/internal/handlers"
	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/services/auth"
	"github.com/lilybakes/ovenbook/internal/services/importer"
	"github.com/lilybakes/ovenbook/internal/services/reporting"
	"github.com/lilybakes/ovenbook/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := storage.NewUserRepository(db)
	sessionRepo := storage.NewSessionRepository(db)
	contactRepo := storage.NewContactRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	recipeRepo := storage.NewRecipeRepository(db)
	invoiceRepo := storage.NewInvoiceRepository(db)
	expenseRepo := storage.NewExpenseRepository(db)

	// Initialize services
	authService := auth.NewService(cfg, userRepo, sessionRepo)
	importService := importer.NewService(contactRepo, orderRepo, expenseRepo)
	reportingService := reporting.NewService()

	// Initialize handlers
	h, err := handlers.New(
		cfg,
		getTemplateDir(),
		authService,
		importService,
		reportingService,
		userRepo,
		contactRepo,
		orderRepo,
		recipeRepo,
		invoiceRepo,
		expenseRepo,
	)
	if err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuth(authService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	fs := http.FileServer(http.Dir(getStaticDir()))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Public routes
	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.Login(w, r)
		} else {
			h.LoginPage(w, r)
		}
	})
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.Register(w, r)
		} else {
			h.RegisterPage(w, r)
		}
	})
	mux.HandleFunc("/logout", h.Logout)
	mux.Handle("/api/template.csv", http.HandlerFunc(h.DownloadTemplate))

	// Protected pages
	mux.Handle("/dashboard", authMiddleware.RequireAuth(http.HandlerFunc(h.Dashboard)))
	mux.Handle("/import", authMiddleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.ImportCSV(w, r)
		} else {
			h.ImportPage(w, r)
		}
	})))

	// API routes - import
	mux.Handle("/api/import/preview", authMiddleware.RequireAuth(http.HandlerFunc(h.PreviewImport)))

	// API routes - dashboard
	mux.Handle("/api/dashboard", authMiddleware.RequireAuth(http.HandlerFunc(h.APIDashboardSummary)))

	// API routes - resources
	registerResource(mux, authMiddleware, "/api/contacts", resourceHandlers{
		list:   h.ListContacts,
		create: h.CreateContact,
		get:    h.GetContact,
		update: h.UpdateContact,
		delete: h.DeleteContact,
	})
	registerResource(mux, authMiddleware, "/api/orders", resourceHandlers{
		list:   h.ListOrders,
		create: h.CreateOrder,
		get:    h.GetOrder,
		update: h.UpdateOrder,
		delete: h.DeleteOrder,
	})
	registerResource(mux, authMiddleware, "/api/recipes", resourceHandlers{
		list:   h.ListRecipes,
		create: h.CreateRecipe,
		get:    h.GetRecipe,
		update: h.UpdateRecipe,
		delete: h.DeleteRecipe,
	})
	registerResource(mux, authMiddleware, "/api/expenses", resourceHandlers{
		list:   h.ListExpenses,
		create: h.CreateExpense,
		get:    h.GetExpense,
		update: h.UpdateExpense,
		delete: h.DeleteExpense,
	})
	registerResource(mux, authMiddleware, "/api/invoices", resourceHandlers{
		list:   h.ListInvoices,
		create: h.CreateInvoice,
		get:    h.GetInvoice,
		update: h.PayInvoice,
		delete: h.DeleteInvoice,
	})

	// Apply global middleware
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.SecurityHeaders,
		middleware.Logger,
	)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Ovenbook server starting on http://localhost%s", addr)
	log.Printf("Environment: %s", cfg.Environment)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

type resourceHandlers struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// registerResource wires collection and item routes for one resource:
// GET/POST on /api/xs and GET/PUT/DELETE on /api/xs/{id}.
func registerResource(mux *http.ServeMux, auth *middleware.Auth, path string, rh resourceHandlers) {
	mux.Handle(path, auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rh.list(w, r)
		case http.MethodPost:
			rh.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle(path+"/", auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rh.get(w, r)
		case http.MethodPut:
			rh.update(w, r)
		case http.MethodDelete:
			rh.delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
}

func getTemplateDir() string {
	if _, err := os.Stat("web/templates"); err == nil {
		return "web/templates"
	}

	exe, _ := os.Executable()
	templateDir := filepath.Join(filepath.Dir(exe), "web", "templates")
	if _, err := os.Stat(templateDir); err == nil {
		return templateDir
	}

	return "web/templates"
}

func getStaticDir() string {
	if _, err := os.Stat("web/static"); err == nil {
		return "web/static"
	}

	exe, _ := os.Executable()
	staticDir := filepath.Join(filepath.Dir(exe), "web", "static")
	if _, err := os.Stat(staticDir); err == nil {
		return staticDir
	}

	return "web/static"
}
