// Package server exposes designer sessions, templates, projections and the
// cart over HTTP.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/auth"
	"github.com/piwi3910/RoomCraft/internal/cart"
	"github.com/piwi3910/RoomCraft/internal/config"
	"github.com/piwi3910/RoomCraft/internal/project"
	"github.com/piwi3910/RoomCraft/internal/projection"
	"github.com/piwi3910/RoomCraft/internal/session"
	"github.com/piwi3910/RoomCraft/internal/store"
)

// Options configures a Server.
type Options struct {
	Server      config.ServerConfig
	Auth        config.AuthConfig
	ScaleFactor float64
	Store       store.KV
	Logger      *zap.Logger
	// AccessLog enables the per-request log line.
	AccessLog bool
}

// Server owns the HTTP app and one designer session per issued token.
type Server struct {
	app       *fiber.App
	log       *zap.Logger
	kv        store.KV
	templates *project.TemplateRepository
	cart      *cart.Cart
	renderer  *projection.Renderer
	keys      auth.KeyChecker
	tokens    *auth.SessionManager

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// New builds the server and registers its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}

	s := &Server{
		log:       opts.Logger,
		kv:        opts.Store,
		templates: project.NewTemplateRepository(opts.Store, opts.Logger),
		cart:      cart.New(opts.Store),
		renderer:  projection.NewRenderer(opts.ScaleFactor, opts.Logger),
		keys:      auth.NewKeyChecker(opts.Auth.Required, opts.Auth.APIKey),
		tokens:    auth.NewSessionManager(),
		sessions:  make(map[string]*session.Session),
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  opts.Server.ReadTimeout,
		WriteTimeout: opts.Server.WriteTimeout,
		AppName:      "RoomCraft",
		UnescapePath: true,
	})

	s.app.Use(recover.New())
	if opts.AccessLog {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health/live", s.live)
	s.app.Get("/health/ready", s.ready)

	api := s.app.Group("/api")
	api.Post("/sessions", s.createSession)
	api.Delete("/sessions", s.requireSession, s.deleteSession)

	scene := api.Group("/scene", s.requireSession)
	scene.Get("/", s.getScene)
	scene.Post("/reset", s.resetScene)
	scene.Put("/room", s.updateRoom)
	scene.Put("/furniture/:type", s.updateFurniture)
	scene.Get("/views/:plane", s.getView)

	templates := api.Group("/templates", s.requireSession)
	templates.Get("/", s.listTemplates)
	templates.Post("/", s.saveTemplate)
	templates.Get("/:name", s.getTemplate)
	templates.Post("/:name/load", s.loadTemplate)
	templates.Delete("/:name", s.deleteTemplate)

	cartRoutes := api.Group("/cart", s.requireSession)
	cartRoutes.Get("/", s.getCart)
	cartRoutes.Post("/:type", s.addToCart)
}

// App returns the fiber app, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("starting HTTP API", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// openSession creates the designer session for a new token.
func (s *Server) openSession() (token, id string) {
	token, id = s.tokens.Issue()
	log := s.log.With(zap.String("session", id))
	sess := session.New(session.Options{
		Templates: s.templates,
		Cart:      s.cart,
		Renderer:  s.renderer,
		Logger:    log,
	})

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info("session opened")
	return token, id
}

func (s *Server) lookup(token string) (*session.Session, bool) {
	id, ok := s.tokens.Resolve(token)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) closeSession(token string) bool {
	id, ok := s.tokens.Revoke(token)
	if !ok {
		return false
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.log.Info("session closed", zap.String("session", id))
	return true
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

const pingTimeout = 2 * time.Second
