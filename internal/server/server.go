// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/metrics"
	"github.com/quixsi/core/internal/model"
	"github.com/quixsi/core/internal/rsvp"
	"github.com/quixsi/core/internal/server/templates"
)

//go:embed all:static
var staticFS embed.FS

type Admin struct {
	Username string
	Password string
}

func NewServer(
	serviceName string,
	staticDir string,
	deadline time.Time,
	admin Admin,
	invites db.InviteDirectory,
	events db.EventStore,
	svc *rsvp.Service,
	m *metrics.Metrics,
) *Server {
	s := &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		staticDir:   staticDir,
		deadline:    deadline,
		admin:       admin,
		invites:     invites,
		events:      events,
		svc:         svc,
		metrics:     m,
		now:         time.Now,
	}
	s.handler = s.routes()
	return s
}

type Server struct {
	serviceName string
	staticDir   string
	deadline    time.Time
	admin       Admin
	logger      *slog.Logger
	invites     db.InviteDirectory
	events      db.EventStore
	svc         *rsvp.Service
	metrics     *metrics.Metrics
	now         func() time.Time

	handler http.Handler
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	mux := gin.New()

	mux.Use(
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	)

	var staticDir fs.FS
	var err error
	switch {
	case s.staticDir != "":
		staticDir = os.DirFS(s.staticDir)
	default:
		staticDir, err = fs.Sub(staticFS, "static")
		if err != nil {
			panic(err)
		}
	}
	mux.StaticFS("/static", http.FS(staticDir))
	mux.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := &apiHandler{svc: s.svc, metrics: s.metrics, logger: s.logger}
	apiArea := mux.Group("/api")
	submit := []gin.HandlerFunc{api.Submit}
	if !s.deadline.IsZero() {
		submit = append([]gin.HandlerFunc{rsvpDeadline(s.logger, s.deadline, func() time.Time { return s.now() })}, submit...)
	}
	apiArea.POST("/rsvp", submit...)
	apiArea.GET("/rsvp/status", api.Status)
	apiArea.POST("/track-view", api.TrackView)

	inviteHandler := templates.NewInviteHandler(s.invites, s.events)
	inviteArea := mux.Group("/invite/:code", inviteExists(s.invites))
	inviteArea.GET("", inviteHandler.RenderInvite)
	inviteArea.GET("/calendar.ics", inviteHandler.RenderCalendar)

	adminArea := mux.Group("/admin", gin.BasicAuth(gin.Accounts{
		s.admin.Username: s.admin.Password,
	}))
	adminArea.GET("/", api.Overview)

	mux.NoRoute(notFound)
	return mux
}

func inviteExists(invites db.InviteDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := invites.Lookup(c.Request.Context(), c.Param("code")); !ok {
			templates.NotFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}

// rsvpDeadline closes submissions once the deadline has passed. Reads stay
// available.
func rsvpDeadline(logger *slog.Logger, deadline time.Time, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var span trace.Span
		ctx := c.Request.Context()
		ctx, span = tracer.Start(ctx, "Middleware.rsvpDeadline")
		defer span.End()

		if now().After(deadline) {
			err := model.ErrDeadlinePassed
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.WarnContext(ctx, "rsvp closed", "deadline", deadline)
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
