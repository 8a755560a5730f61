package server

import (
	"errors"
	"net/http"
	"strings"

	"mtys/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requests, err := s.requests.All(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch requests for dashboard")
		s.internalServerError(w)
		return
	}

	stats, err := s.requests.Stats(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch request stats")
		s.internalServerError(w)
		return
	}

	data := &types.DashboardPageData{
		Requests: requests,
		Stats:    stats,
	}
	data.Notice = strings.TrimSpace(r.URL.Query().Get("notice"))
	data.Error = strings.TrimSpace(r.URL.Query().Get("error"))

	err = s.renderTemplate(w, r, "page.dashboard", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleRequestLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := strings.TrimSpace(flow.Param(ctx, "requestID"))
	if requestID == "" {
		http.NotFound(w, r)
		return
	}

	record, err := s.requests.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, types.ErrRequestNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to fetch request for log page")
		s.internalServerError(w)
		return
	}

	entries, err := s.logs.ForRequest(ctx, requestID)
	if err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to fetch request logs")
		s.internalServerError(w)
		return
	}

	data := &types.LogsPageData{
		Request: record,
		Entries: entries,
	}

	err = s.renderTemplate(w, r, "page.logs", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render log page")
		s.internalServerError(w)
		return
	}
}
