package web

import (
	"net/http"

	"workboard/internal/auth"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in auth.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	sess, err := s.auth.Register(r.Context(), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	s.cfg.Cookie.SetSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusCreated, sess)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	sess, err := s.auth.Authorize(r.Context(), in.Email, in.Password)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	s.cfg.Cookie.SetSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.cfg.Cookie.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"loggedOut": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := userFrom(r.Context())
	if !ok {
		writeFailure(w, r, auth.ErrNotLoggedIn)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := userFrom(r.Context())
	if !ok {
		writeFailure(w, r, auth.ErrNotLoggedIn)
		return
	}
	var p auth.ProfilePatch
	if err := decodeJSON(r, &p); err != nil {
		writeFailure(w, r, err)
		return
	}
	updated, err := s.auth.UpdateUser(r.Context(), u.ID, p)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
