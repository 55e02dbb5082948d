package server

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/jrsteele09/go-members-server/internal/config"
	"github.com/jrsteele09/go-members-server/sessions"
)

// memberImages is the number of images the members page picks from
const memberImages = 3

type Server struct {
	env        string // Environment (e.g. "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	deps       auth.Deps
	auth       *auth.AuthService
	admin      *auth.AdminService
	cookies    *sessions.CookieCodec
	pages      *pages
	imageIndex func() int
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

// WithImagePicker replaces the random member image selection (primarily for testing)
func WithImagePicker(pick func() int) ServerOption {
	return func(s *Server) {
		s.imageIndex = pick
	}
}

// New builds the HTTP server, creating the bootstrap admin when one is configured.
func New(config config.Config, deps auth.Deps, options ...ServerOption) (*Server, error) {
	authService, err := auth.NewAuthService(deps)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}
	adminService, err := auth.NewAdminService(deps.Users)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create admin service: %w", err)
	}
	codec, err := sessions.NewCookieCodec(config.GetSessionSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create cookie codec: %w", err)
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:        config.GetEnv(),
		mux:        http.NewServeMux(),
		config:     config,
		deps:       deps,
		auth:       authService,
		admin:      adminService,
		cookies:    codec.WithNowTime(deps.Sessions.Now),
		pages:      pages,
		imageIndex: func() int { return rand.IntN(memberImages) },
	}
	for _, opt := range options {
		opt(s)
	}

	if err := s.InitialiseAdmin(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise the admin user: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) now() time.Time {
	return s.deps.Sessions.Now()
}

func (s *Server) isDev() bool {
	return s.env == config.DevEnv
}

func (s *Server) logRoutes() {
	if !s.isDev() {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colourMethod(method), path, Red+error+ResetColor)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
