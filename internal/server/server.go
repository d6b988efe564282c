package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/avkorz/diskhub/internal/budget"
	"github.com/avkorz/diskhub/internal/config"
	"github.com/avkorz/diskhub/internal/disk"
	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/handler"
	"github.com/avkorz/diskhub/internal/middleware"
	"github.com/avkorz/diskhub/internal/portfolio"
	"github.com/avkorz/diskhub/internal/push"
	"github.com/avkorz/diskhub/internal/todo"
	"github.com/avkorz/diskhub/internal/ws"
)

// Server wires the handlers, services, and shared infra together.
type Server struct {
	cfg         config.Config
	hub         *ws.Hub
	authH       *handler.AuthHandler
	memberH     *handler.MemberHandler
	photoH      *handler.PhotoHandler
	todoH       *handler.TodoHandler
	budgetH     *handler.BudgetHandler
	portfolioH  *handler.PortfolioHandler
	fileH       *handler.FileHandler
	driveH      *handler.DriveHandler
	pushH       *handler.PushHandler
	rateLimiter *middleware.RateLimiter
	scheduler   *push.Scheduler
	logger      *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) *Server {
	diskClient := disk.NewClient(cfg.DiskAPIBase, logger.With("component", "disk"))
	store := docstore.NewDiskStore(diskClient, logger.With("component", "docstore"))
	repo := docstore.NewRepo(store)

	hub := ws.NewHub(logger.With("component", "ws"))

	familySvc := family.NewService(repo, store, logger.With("component", "family"))
	todoSvc := todo.NewService(repo, logger.With("component", "todo"))
	portfolioSvc := portfolio.NewService(repo, logger.With("component", "portfolio"))
	budgetSvc := budget.NewService(repo, logger.With("component", "budget"))

	// Push is optional: without VAPID keys the endpoints stay unregistered
	// and no scheduler runs.
	var pushSvc *push.Service
	var pushH *handler.PushHandler
	var scheduler *push.Scheduler
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(push.Config{
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			Subscriber:      cfg.PushSubscriber,
		})
		subs := push.NewSubscriptionStore(repo)
		pushH = handler.NewPushHandler(pushSvc, subs, logger.With("component", "push_handler"))
		if cfg.DiskToken != "" {
			scheduler = push.NewScheduler(pushSvc, subs, familySvc, todoSvc, cfg.DiskToken, logger.With("component", "push"))
		}
	}

	return &Server{
		cfg:         cfg,
		hub:         hub,
		authH:       handler.NewAuthHandler(familySvc, diskClient, cfg.SessionSecret, cfg.SessionTTL, logger.With("component", "auth")),
		memberH:     handler.NewMemberHandler(familySvc, hub, logger.With("component", "members")),
		photoH:      handler.NewPhotoHandler(familySvc, diskClient, logger.With("component", "photos")),
		todoH:       handler.NewTodoHandler(todoSvc, hub, logger.With("component", "todos")),
		budgetH:     handler.NewBudgetHandler(budgetSvc, logger.With("component", "budgets")),
		portfolioH:  handler.NewPortfolioHandler(portfolioSvc, hub, logger.With("component", "portfolio")),
		fileH:       handler.NewFileHandler(diskClient, logger.With("component", "files")),
		driveH:      handler.NewDriveHandler(diskClient, logger.With("component", "drive")),
		pushH:       pushH,
		rateLimiter: middleware.NewRateLimiter(),
		scheduler:   scheduler,
		logger:      logger,
	}
}

// Scheduler returns the reminder scheduler, nil when push is not configured.
func (s *Server) Scheduler() *push.Scheduler {
	return s.scheduler
}

// RateLimiter returns the limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outer := http.NewServeMux()

	limited := middleware.RateLimit(s.rateLimiter, 10, time.Minute)

	// Public routes.
	outer.Handle("POST /connect", limited(http.HandlerFunc(s.authH.Connect)))
	outer.HandleFunc("POST /disconnect", s.authH.Disconnect)
	outer.HandleFunc("GET /health", s.healthHandler)

	// Everything else needs a resolvable disk token.
	protected := http.NewServeMux()
	s.registerProtectedRoutes(protected)

	requireToken := middleware.RequireToken(s.cfg.SessionSecret, s.logger.With("component", "auth_mw"))
	outer.Handle("/", requireToken(protected))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outer)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	limited := middleware.RateLimit(s.rateLimiter, 10, time.Minute)

	// Family directory.
	mux.Handle("POST /api/family/login", limited(http.HandlerFunc(s.authH.Login)))
	mux.HandleFunc("GET /api/family/members", s.memberH.List)
	mux.HandleFunc("POST /api/family/members", s.memberH.Create)
	mux.HandleFunc("DELETE /api/family/members/{id}", s.memberH.Remove)

	// Profile photos.
	mux.HandleFunc("GET /api/family/members/{id}/photo", s.photoH.Get)
	mux.HandleFunc("POST /api/family/members/{id}/photo", s.photoH.Upload)
	mux.HandleFunc("DELETE /api/family/members/{id}/photo", s.photoH.Delete)

	// To-do lists.
	mux.HandleFunc("GET /api/family/todos", s.todoH.Lists)
	mux.HandleFunc("POST /api/family/todos", s.todoH.CreateList)
	mux.HandleFunc("PUT /api/family/todos/{listId}", s.todoH.UpdateList)
	mux.HandleFunc("DELETE /api/family/todos/{listId}", s.todoH.DeleteList)
	mux.HandleFunc("POST /api/family/todos/{listId}/items", s.todoH.CreateItem)
	mux.HandleFunc("PUT /api/family/todos/{listId}/items/{itemId}", s.todoH.UpdateItem)
	mux.HandleFunc("DELETE /api/family/todos/{listId}/items/{itemId}", s.todoH.DeleteItem)

	// Budgets (read-only).
	mux.HandleFunc("GET /api/family/budgets", s.budgetH.List)

	// Portfolio catalog.
	mux.HandleFunc("GET /api/portfolio", s.portfolioH.List)
	mux.HandleFunc("POST /api/portfolio", s.portfolioH.Create)
	mux.HandleFunc("PUT /api/portfolio/{id}", s.portfolioH.Update)
	mux.HandleFunc("DELETE /api/portfolio/{id}", s.portfolioH.Delete)

	// Family-scoped file operations.
	mux.HandleFunc("GET /api/family/files", s.fileH.List)
	mux.HandleFunc("DELETE /api/family/files", s.fileH.Delete)
	mux.HandleFunc("POST /api/family/folders", s.fileH.CreateFolder)
	mux.HandleFunc("POST /api/family/files/upload", s.fileH.Upload)
	mux.HandleFunc("GET /api/family/files/download", s.fileH.Download)

	// Browser drive surface.
	mux.HandleFunc("GET /api/files", s.driveH.List)
	mux.HandleFunc("GET /api/files/content", s.driveH.GetContent)
	mux.HandleFunc("PUT /api/files/content", s.driveH.SaveContent)
	mux.HandleFunc("POST /api/files/new", s.driveH.CreateFile)
	mux.HandleFunc("POST /api/upload", s.driveH.Upload)
	mux.HandleFunc("POST /api/upload/url", s.driveH.UploadFromURL)

	// Live sync.
	mux.Handle("GET /ws", ws.Handler(s.hub))

	// Push notifications, when configured.
	if s.pushH != nil {
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscribe", s.pushH.Unsubscribe)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
