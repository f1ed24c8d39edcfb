package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"gallery_admin/internal/config"
	appmiddleware "gallery_admin/internal/middleware"
	httprouters "gallery_admin/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
}

func New(log *slog.Logger, httpCfg config.HTTPConfig, sessionCfg config.SessionConfig, routers *httprouters.Routers) (*Server, error) {
	const op = "httpapp.New"

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = httpCfg.ReadTimeout
	e.Server.WriteTimeout = httpCfg.WriteTimeout

	e.Validator = &CustomValidator{validator: validator.New()}

	renderer, err := httprouters.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.Renderer = renderer

	store := sessions.NewCookieStore([]byte(sessionCfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionCfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   sessionCfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    httpCfg.Host,
		port:    httpCfg.Port,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", net.JoinHostPort(s.host, s.port)))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(net.JoinHostPort(s.host, s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/", s.routers.LoginPage)
	s.e.POST("/login", s.routers.Login)
	s.e.POST("/logout", s.routers.Logout)

	s.e.GET("/images/*", s.routers.Image)
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	admin := s.e.Group("/admin", s.routers.RequireSession)
	{
		admin.GET("", s.routers.Gallery)
		admin.GET("/state", s.routers.State)
		admin.POST("/refresh", s.routers.Refresh)
		admin.POST("/filter", s.routers.SetFilter)
		admin.POST("/page", s.routers.GoToPage)
		admin.GET("/items/:id/delete", s.routers.ConfirmDelete)
		admin.POST("/items/:id/delete", s.routers.DeleteItem)
		admin.GET("/zoom/:id", s.routers.OpenZoom)
		admin.POST("/zoom/close", s.routers.CloseZoom)
	}
}
