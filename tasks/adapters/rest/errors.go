package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
	"github.com/mmbalbas1132/Task-Management-System/tasks/pkg/res"
)

func WriteErr(c echo.Context, log *slog.Logger, err error) error {
	var verr *core.ValidationError

	switch {
	case errors.As(err, &verr):
		return res.Json(c, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		}, http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrTaskInvalidArgs):
		return res.Error(c, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrTaskNotFound):
		return res.Error(c, core.ErrTaskNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrUnauthenticated):
		return res.Error(c, core.ErrUnauthenticated.Error(), http.StatusUnauthorized)
	default:
		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
		return res.Error(c, "internal error", http.StatusInternalServerError)
	}
}
