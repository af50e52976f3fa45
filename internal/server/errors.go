// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quixsi/core/internal/metrics"
	"github.com/quixsi/core/internal/model"
)

type errorDetails struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}

type errorResponse struct {
	OK      bool          `json:"ok"`
	Error   string        `json:"error"`
	Details *errorDetails `json:"details,omitempty"`
}

// mapError decides status and body for every error the API returns.
// Configuration problems never reach the client in detail.
func mapError(err error) (int, errorResponse) {
	var (
		vErr   *model.ValidationError
		cfgErr *model.ConfigurationError
		gwErr  *model.GatewayError
	)
	switch {
	case errors.As(err, &vErr):
		resp := errorResponse{Error: vErr.Reason.Error()}
		if len(vErr.Fields) > 0 {
			resp.Details = &errorDetails{FieldErrors: make(map[string][]string)}
			for _, f := range vErr.Fields {
				resp.Details.FieldErrors[f.Field] = append(resp.Details.FieldErrors[f.Field], f.Message)
			}
		}
		return http.StatusBadRequest, resp
	case errors.Is(err, model.ErrDeadlinePassed):
		return http.StatusMethodNotAllowed, errorResponse{Error: err.Error()}
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, errorResponse{Error: model.ErrConfiguration.Error()}
	case errors.As(err, &gwErr):
		return http.StatusInternalServerError, errorResponse{Error: gwErr.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := mapError(err)
	c.AbortWithStatusJSON(status, body)
}

func resultOf(err error) string {
	var (
		vErr   *model.ValidationError
		cfgErr *model.ConfigurationError
	)
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &vErr):
		return metrics.ResultRejected
	case errors.Is(err, model.ErrDeadlinePassed):
		return metrics.ResultClosed
	case errors.As(err, &cfgErr):
		return metrics.ResultConfiguration
	default:
		return metrics.ResultGateway
	}
}
