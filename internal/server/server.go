package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"mtys/internal/importer"
	"mtys/internal/normalize"
	"mtys/internal/store"
	"mtys/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template

	norm     *normalize.Normalizer
	imports  *importer.Importer
	requests *store.RequestRepository
	muhtars  *store.MuhtarRepository
	logs     *store.LogRepository
	users    *store.UserRepository

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	norm *normalize.Normalizer,
	imports *importer.Importer,
	requests *store.RequestRepository,
	muhtars *store.MuhtarRepository,
	logs *store.LogRepository,
	users *store.UserRepository,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		norm:     norm,
		imports:  imports,
		requests: requests,
		muhtars:  muhtars,
		logs:     logs,
		users:    users,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/", s.handleDashboard, http.MethodGet)

		r.HandleFunc("/requests/new", s.handleGetNewRequest, http.MethodGet)
		r.HandleFunc("/requests/new", s.handlePostNewRequest, http.MethodPost)
		r.HandleFunc("/requests/:requestID/edit", s.handleGetEditRequest, http.MethodGet)
		r.HandleFunc("/requests/:requestID/edit", s.handlePostEditRequest, http.MethodPost)
		r.HandleFunc("/requests/:requestID/logs", s.handleRequestLogs, http.MethodGet)
		r.HandleFunc("/requests/delete", s.handlePostDeleteRequests, http.MethodPost)

		r.HandleFunc("/upload", s.handleGetUpload, http.MethodGet)
		r.HandleFunc("/upload/muhtar", s.handlePostMuhtarUpload, http.MethodPost)
		r.HandleFunc("/upload/requests", s.handlePostRequestUpload, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireRole(types.RoleAdmin))

		r.HandleFunc("/admin", s.handleAdmin, http.MethodGet)
		r.HandleFunc("/admin/users", s.handlePostCreateUser, http.MethodPost)
		r.HandleFunc("/admin/users/delete", s.handlePostDeleteUser, http.MethodPost)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"fmtTime": func(t time.Time) string {
			return t.Local().Format("02.01.2006 15:04")
		},
		"orDash": func(v string) string {
			if strings.TrimSpace(v) == "" {
				return "-"
			}
			return v
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
