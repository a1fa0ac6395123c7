package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Spok95/hifz-contest/internal/auth"
	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  models.Session `json:"user"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSON(w, r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "طلب غير صالح")
		return
	}
	ctx := ctxutil.WithOp(r.Context(), "login")
	r = r.WithContext(ctx)

	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, db.ErrNotFound) {
		s.fail(w, r, auth.ErrInvalidCredentials)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		s.fail(w, r, err)
		return
	}

	sess := models.Session{ID: u.ID, Username: u.Username, Role: u.Role}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, loginResponse{Token: token, User: sess})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	sess, _ := ctxutil.Session(r.Context())
	JSONResponse(w, http.StatusOK, sess)
}
