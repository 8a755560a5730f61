package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mtys/pkg/types"
)

func (s *Service) handleAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.users.All(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch users for admin page")
		s.internalServerError(w)
		return
	}

	entries, err := s.logs.All(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch audit log for admin page")
		s.internalServerError(w)
		return
	}

	data := &types.AdminPageData{
		Users:   users,
		Entries: entries,
		Roles:   []types.Role{types.RoleAdmin, types.RoleUser, types.RoleViewer},
	}
	data.Notice = strings.TrimSpace(r.URL.Query().Get("notice"))
	data.Error = strings.TrimSpace(r.URL.Query().Get("error"))

	err = s.renderTemplate(w, r, "page.admin", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render admin page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin", "Form çözümlenemedi.")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role := types.Role(r.FormValue("role"))

	user, err := s.users.Create(ctx, username, password, role)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.redirectWithError(w, r, "/admin", verr.Message)
			return
		}

		s.logger.WithError(err).WithField("username", username).Error("failed to create user")
		s.redirectWithError(w, r, "/admin", "Kullanıcı oluşturulamadı.")
		return
	}

	s.redirectWithNotice(w, r, "/admin", fmt.Sprintf("%s kullanıcısı oluşturuldu.", user.Username))
}

func (s *Service) handlePostDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin", "Form çözümlenemedi.")
		return
	}

	userID := strings.TrimSpace(r.FormValue("id"))
	if userID == "" {
		s.redirectWithError(w, r, "/admin", "Silinecek kullanıcı seçilmedi.")
		return
	}

	// A user may not delete their own account while logged in with it.
	actorID, _ := ctx.Value(contextKeyUserID).(string)
	if userID == actorID {
		s.redirectWithError(w, r, "/admin", "Oturum açmış kullanıcı kendini silemez.")
		return
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to delete user")
		s.redirectWithError(w, r, "/admin", "Kullanıcı silinemedi.")
		return
	}

	s.redirectWithNotice(w, r, "/admin", "Kullanıcı silindi.")
}
