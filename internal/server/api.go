// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/metrics"
	"github.com/quixsi/core/internal/model"
	"github.com/quixsi/core/internal/rsvp"
)

const maxBodyBytes = 64 << 10

type apiHandler struct {
	svc     *rsvp.Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func (a *apiHandler) Submit(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "apiHandler.Submit")
	defer span.End()

	body, err := readBody(c)
	if err != nil {
		a.metrics.Submission(metrics.ResultRejected, 0)
		abortWithError(c, err)
		return
	}

	res, err := a.svc.Submit(ctx, body)
	if err != nil {
		a.metrics.Submission(resultOf(err), 0)
		abortWithError(c, err)
		return
	}

	if res.Updates == nil {
		a.metrics.Submission(metrics.ResultBot, 0)
	} else {
		a.metrics.Submission(metrics.ResultOK, int(res.Updates.UpdatedRows))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updates": res.Updates})
}

func (a *apiHandler) Status(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "apiHandler.Status")
	defer span.End()

	res, err := a.svc.Status(ctx, c.Query("code"))
	a.metrics.StatusCheck(resultOf(err))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"hasSubmitted": res.HasSubmitted,
		"responses":    res.Responses,
	})
}

func (a *apiHandler) TrackView(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "apiHandler.TrackView")
	defer span.End()

	body, err := readBody(c)
	if err == nil {
		err = a.svc.TrackView(ctx, body)
	}
	a.metrics.PageView(resultOf(err))
	if err != nil {
		a.logger.ErrorContext(ctx, "track view failed", "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *apiHandler) Overview(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "apiHandler.Overview")
	defer span.End()

	res, err := a.svc.Overview(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "overview": res})
}

func readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, model.NewValidationError(model.ErrInvalidInput, model.FieldError{
			Field:   "body",
			Message: "could not read request body",
		})
	}
	return body, nil
}
