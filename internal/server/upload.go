package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"mtys/internal/importer"
	"mtys/internal/tabular"
	"mtys/pkg/types"
)

func (s *Service) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	data := &types.UploadPageData{}
	data.Notice = strings.TrimSpace(r.URL.Query().Get("notice"))
	data.Error = strings.TrimSpace(r.URL.Query().Get("error"))

	err := s.renderTemplate(w, r, "page.upload", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render upload page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostMuhtarUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, name, err := s.readUpload(w, r)
	if err != nil {
		s.redirectWithError(w, r, "/upload", "Dosya okunamadı.")
		return
	}

	var rows []types.MuhtarInfo
	if isExcel(name) {
		rows, err = tabular.ParseMuhtarExcel(data)
	} else {
		rows, err = tabular.ParseMuhtarCSV(string(data))
	}
	if err != nil {
		s.logger.WithError(err).WithField("file", name).Warn("muhtar upload rejected")
		s.redirectWithError(w, r, "/upload", fmt.Sprintf("Dosya işlenemedi: %v", err))
		return
	}

	if err := s.imports.ReplaceMuhtars(ctx, rows); err != nil {
		s.logger.WithError(err).Error("failed to replace muhtar data")
		s.redirectWithError(w, r, "/upload", "Muhtar bilgileri güncellenemedi.")
		return
	}

	s.redirectWithNotice(w, r, "/upload", fmt.Sprintf("%d muhtar kaydı yüklendi.", len(rows)))
}

func (s *Service) handlePostRequestUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, name, err := s.readUpload(w, r)
	if err != nil {
		s.redirectWithError(w, r, "/upload", "Dosya okunamadı.")
		return
	}

	var rows []types.RequestInput
	if isExcel(name) {
		rows, err = tabular.ParseRequestExcel(data, s.norm)
	} else {
		rows, err = tabular.ParseRequestCSV(string(data), s.norm)
	}
	if err != nil {
		s.logger.WithError(err).WithField("file", name).Warn("request upload rejected")
		s.redirectWithError(w, r, "/upload", fmt.Sprintf("Dosya işlenemedi: %v", err))
		return
	}

	policy := importer.ContinueOnError
	if r.FormValue("on_error") == "abort" {
		policy = importer.AbortOnError
	}

	username, _ := ctx.Value(contextKeyUsername).(string)

	result, err := s.imports.ImportRequests(ctx, rows, policy, username)
	if err != nil && result == nil {
		s.logger.WithError(err).Error("request import failed")
		s.redirectWithError(w, r, "/upload", "Talepler içe aktarılamadı.")
		return
	}

	if len(result.Failed) > 0 {
		s.redirectWithError(w, r, "/upload",
			fmt.Sprintf("%d talep yüklendi, %d satır başarısız. İlk hata: %v", result.Imported, len(result.Failed), result.Failed[0]))
		return
	}

	s.redirectWithNotice(w, r, "/upload", fmt.Sprintf("%d talep yüklendi.", result.Imported))
}

// readUpload pulls the "file" part out of the multipart form, capped at the
// configured upload size.
func (s *Service) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		return nil, "", fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing file part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	return data, header.Filename, nil
}

func isExcel(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}
