package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"workboard/internal/auth"
	"workboard/internal/store"
)

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	Cookie          auth.CookieConfig
	// MaxBodyBytes caps request bodies; 0 means 1 MiB.
	MaxBodyBytes int64
}

// Server exposes the store and the session manager as a JSON API behind the page guard.
type Server struct {
	cfg     ServerConfig
	store   *store.Store
	auth    *auth.Manager
	guard   auth.Guard
	log     *slog.Logger
	handler http.Handler
}

func NewServer(cfg ServerConfig, st *store.Store, am *auth.Manager, log *slog.Logger) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if st == nil || am == nil {
		return nil, errors.New("web: store and auth manager are required")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.Cookie.MaxAge <= 0 {
		cfg.Cookie.MaxAge = am.Tokens().TTL()
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		store: st,
		auth:  am,
		guard: auth.NewGuard(am.Tokens()),
		log:   log,
	}
	s.handler = chain(s.routes(),
		requestIDMiddleware,
		s.loggerMiddleware,
		recoveryMiddleware,
		loggingMiddleware,
		s.guardMiddleware,
		maxBytesMiddleware(cfg.MaxBodyBytes),
	)
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Pages (rendering is out of scope; they answer with small JSON documents).
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /login", s.handlePage("login"))
	mux.HandleFunc("GET /signup", s.handlePage("signup"))
	mux.HandleFunc("GET /forgot-password", s.handlePage("forgot-password"))
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)
	mux.HandleFunc("PATCH /api/auth/me", s.handleUpdateMe)

	// Workspaces
	mux.HandleFunc("GET /api/workspaces", s.handleListWorkspaces)
	mux.HandleFunc("POST /api/workspaces", s.handleCreateWorkspace)
	mux.HandleFunc("GET /api/workspaces/{id}", s.handleGetWorkspace)
	mux.HandleFunc("PATCH /api/workspaces/{id}", s.handleUpdateWorkspace)
	mux.HandleFunc("DELETE /api/workspaces/{id}", s.handleDeleteWorkspace)
	mux.HandleFunc("POST /api/workspaces/{id}/select", s.handleSelectWorkspace)
	mux.HandleFunc("POST /api/workspaces/{id}/members", s.handleAddMember)
	mux.HandleFunc("DELETE /api/workspaces/{id}/members/{userID}", s.handleRemoveMember)

	// Spaces
	mux.HandleFunc("GET /api/workspaces/{id}/spaces", s.handleListSpaces)
	mux.HandleFunc("POST /api/workspaces/{id}/spaces", s.handleCreateSpace)
	mux.HandleFunc("GET /api/spaces/{id}", s.handleGetSpace)
	mux.HandleFunc("PATCH /api/spaces/{id}", s.handleUpdateSpace)
	mux.HandleFunc("DELETE /api/spaces/{id}", s.handleDeleteSpace)
	mux.HandleFunc("POST /api/spaces/{id}/select", s.handleSelectSpace)
	mux.HandleFunc("GET /api/spaces/{id}/tasks", s.handleTasksInSpace)

	// Lists
	mux.HandleFunc("GET /api/spaces/{id}/lists", s.handleListLists)
	mux.HandleFunc("POST /api/spaces/{id}/lists", s.handleCreateList)
	mux.HandleFunc("GET /api/lists/{id}", s.handleGetList)
	mux.HandleFunc("PATCH /api/lists/{id}", s.handleUpdateList)
	mux.HandleFunc("DELETE /api/lists/{id}", s.handleDeleteList)
	mux.HandleFunc("POST /api/lists/{id}/select", s.handleSelectList)

	// Tasks
	mux.HandleFunc("GET /api/lists/{id}/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/lists/{id}/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/select", s.handleSelectTask)
	mux.HandleFunc("POST /api/tasks/{id}/move", s.handleMoveTask)
	mux.HandleFunc("GET /api/tasks/{id}/subtasks", s.handleListSubtasks)
	mux.HandleFunc("POST /api/tasks/{id}/subtasks", s.handleCreateSubtask)
	mux.HandleFunc("POST /api/tasks/{id}/comments", s.handleAddComment)
	mux.HandleFunc("POST /api/tasks/{id}/checklists", s.handleAddChecklist)
	mux.HandleFunc("PATCH /api/tasks/{id}/checklists/{checklistID}/items/{itemID}", s.handleSetChecklistItem)
	mux.HandleFunc("POST /api/tasks/{id}/fields", s.handleAddCustomField)
	mux.HandleFunc("PUT /api/tasks/{id}/time", s.handleUpdateTime)
	mux.HandleFunc("POST /api/tasks/{id}/dependencies", s.handleAddDependency)
	mux.HandleFunc("POST /api/tasks/{id}/attachments", s.handleAddAttachment)

	// Selection, view, tree
	mux.HandleFunc("GET /api/selection", s.handleSelection)
	mux.HandleFunc("DELETE /api/selection", s.handleClearSelection)
	mux.HandleFunc("GET /api/view", s.handleGetView)
	mux.HandleFunc("PUT /api/view", s.handleSetView)
	mux.HandleFunc("GET /api/tree", s.handleTree)

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully and flushes pending saves.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	s.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	shutdownErr := srv.Shutdown(shutdownCtx)
	if err := s.store.Flush(shutdownCtx); err != nil {
		s.log.Error("flush store", "err", err)
	}
	if err := s.auth.Flush(shutdownCtx); err != nil {
		s.log.Error("flush users", "err", err)
	}
	return shutdownErr
}
