/*
Package api serves the JSON API the browser UI talks to.

Every route is a thin adapter over assistant.Service. Errors are rendered as
{"error": "..."} with a status derived from the error kind.
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/growthkit/linkedin-assistant/internal/assistant"
	"github.com/growthkit/linkedin-assistant/internal/metrics"
)

// Server wraps the echo instance.
type Server struct {
	echo   *echo.Echo
	svc    *assistant.Service
	logger *zap.Logger
}

// New builds the server and registers every route.
func New(svc *assistant.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	s := &Server{echo: e, svc: svc, logger: logger}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordHTTP(v.Method, route, v.Status)

			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("request completed", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.putSettings)

	api.GET("/api-key", s.getAPIKey)
	api.PUT("/api-key", s.putAPIKey)
	api.DELETE("/api-key", s.deleteAPIKey)

	api.GET("/samples", s.listSamples)
	api.POST("/samples", s.addSample)
	api.GET("/samples/search", s.searchSamples)
	api.DELETE("/samples/:id", s.deleteSample)

	api.GET("/feed", s.feed)

	api.GET("/comments", s.listComments)
	api.POST("/comments", s.generateComment)
	api.POST("/comments/:id/post", s.postComment)
	api.POST("/comments/:id/schedule", s.scheduleComment)

	api.GET("/scheduled-posts", s.listScheduledPosts)
	api.POST("/scheduled-posts", s.addScheduledPost)
	api.PATCH("/scheduled-posts/:id", s.updateScheduledPost)
	api.DELETE("/scheduled-posts/:id", s.deleteScheduledPost)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("api listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := mapError(err)
	if he.Code >= http.StatusInternalServerError {
		s.logger.Error("request error",
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", he.Code),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, errorResponse{Error: fmt.Sprint(he.Message)})
	}
	if err != nil {
		s.logger.Warn("failed to write error response", zap.Error(err))
	}
}
