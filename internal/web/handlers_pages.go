package web

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.guard.DashboardPath, http.StatusSeeOther)
}

func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"page": name})
	}
}

// handleDashboard returns what the dashboard needs on first paint.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "dashboard",
		"user":       u,
		"selection":  s.store.Selection(),
		"view":       s.store.View(),
		"workspaces": s.store.Workspaces(),
	})
}
