package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mtys/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleGetNewRequest(w http.ResponseWriter, r *http.Request) {
	data := &types.RequestFormPageData{
		Request:  &types.Request{},
		Channels: types.Channels(),
		Outcomes: types.Outcomes(),
	}
	data.Error = strings.TrimSpace(r.URL.Query().Get("error"))

	err := s.renderTemplate(w, r, "page.request_form", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render new request form")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostNewRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, err := s.decodeRequestForm(r)
	if err != nil {
		s.redirectWithError(w, r, "/requests/new", "Form çözümlenemedi.")
		return
	}

	record, err := s.requests.Create(ctx, input)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.redirectWithError(w, r, "/requests/new", verr.Message)
			return
		}

		s.logger.WithError(err).Error("failed to create request")
		s.redirectWithError(w, r, "/requests/new", "Talep kaydedilemedi.")
		return
	}

	s.redirectWithNotice(w, r, "/", fmt.Sprintf("%s numaralı talep oluşturuldu.", record.TalepNo))
}

func (s *Service) handleGetEditRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := strings.TrimSpace(flow.Param(ctx, "requestID"))
	record, err := s.requests.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, types.ErrRequestNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to fetch request for edit")
		s.internalServerError(w)
		return
	}

	data := &types.RequestFormPageData{
		Request:  record,
		Channels: types.Channels(),
		Outcomes: types.Outcomes(),
		IsEdit:   true,
	}
	data.Error = strings.TrimSpace(r.URL.Query().Get("error"))

	err = s.renderTemplate(w, r, "page.request_form", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render edit request form")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostEditRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := strings.TrimSpace(flow.Param(ctx, "requestID"))
	editPath := fmt.Sprintf("/requests/%s/edit", requestID)

	input, err := s.decodeRequestForm(r)
	if err != nil {
		s.redirectWithError(w, r, editPath, "Form çözümlenemedi.")
		return
	}

	record, err := s.requests.Update(ctx, requestID, input)
	if err != nil {
		if errors.Is(err, types.ErrRequestNotFound) {
			http.NotFound(w, r)
			return
		}

		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.redirectWithError(w, r, editPath, verr.Message)
			return
		}

		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to update request")
		s.redirectWithError(w, r, editPath, "Talep güncellenemedi.")
		return
	}

	s.redirectWithNotice(w, r, "/", fmt.Sprintf("%s numaralı talep güncellendi.", record.TalepNo))
}

func (s *Service) handlePostDeleteRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/", "Form çözümlenemedi.")
		return
	}

	ids := make([]string, 0, len(r.PostForm["ids"]))
	for _, id := range r.PostForm["ids"] {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		s.redirectWithError(w, r, "/", "Silinecek talep seçilmedi.")
		return
	}

	username, _ := ctx.Value(contextKeyUsername).(string)

	deleted, err := s.requests.Delete(ctx, ids, username)
	if err != nil {
		s.logger.WithError(err).Error("failed to delete requests")
		s.redirectWithError(w, r, "/", "Talepler silinemedi.")
		return
	}

	s.redirectWithNotice(w, r, "/", fmt.Sprintf("%d talep silindi.", deleted))
}

// decodeRequestForm parses the posted form into a RequestInput and stamps the
// acting user as the updater.
func (s *Service) decodeRequestForm(r *http.Request) (*types.RequestInput, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	var input types.RequestInput
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		return nil, fmt.Errorf("decode form: %w", err)
	}

	username, _ := r.Context().Value(contextKeyUsername).(string)
	input.Guncelleyen = username

	return &input, nil
}
