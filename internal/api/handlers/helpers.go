package handlers

import (
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/logger"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CodeInvalidParameter = "InvalidParameter"
	CodeNotFound         = "NotFound"
	CodeMethodNotAllowed = "MethodNotAllowed"
	CodeInternal         = "Internal"

	maxBodyBytes = 1 << 20
)

var errEmptyBody = errors.New("empty body")

func WriteError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg, Code: code})
}

// writeServiceError maps domain errors to HTTP statuses. Anything unexpected
// is logged and reported as a generic internal error.
func writeServiceError(c *gin.Context, op string, err error) {
	var pe *domain.ParamError
	switch {
	case errors.As(err, &pe):
		WriteError(c, http.StatusBadRequest, CodeInvalidParameter, pe.Error())
	case errors.Is(err, domain.ErrInvalidParameter):
		WriteError(c, http.StatusBadRequest, CodeInvalidParameter, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteError(c, http.StatusNotFound, CodeNotFound, "not found")
	default:
		logger.WithContext(c.Request.Context()).Error(op+" failed", zap.Error(err))
		WriteError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object, rejecting unknown fields.
// With allowEmpty an empty body leaves v untouched.
func decodeJSON(c *gin.Context, v any, allowEmpty bool) bool {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return true
		}
		if errors.Is(err, io.EOF) {
			err = errEmptyBody
		}
		logger.WithContext(c.Request.Context()).Debug("decode request body failed", zap.Error(err))
		WriteError(c, http.StatusBadRequest, CodeInvalidParameter, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		WriteError(c, http.StatusBadRequest, CodeInvalidParameter, "body must contain only one JSON object")
		return false
	}

	return true
}
