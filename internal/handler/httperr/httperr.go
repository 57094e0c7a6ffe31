// Package httperr builds the error envelope every endpoint answers with:
// {"error":{"code","message"},"detail"}.
package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest      = "invalid_request"
	CodeUnauthenticated     = "unauthenticated"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeSlotConflict        = "slot_conflict"
	CodeProviderUnavailable = "provider_unavailable"
	CodeInternal            = "internal"
)

type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

// CodeFor is the machine-readable code clients branch on. Conflicts carry the colliding
// reservation in detail and cancellations interrupted by the provider carry the committed result.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeSlotConflict
	case http.StatusServiceUnavailable:
		return CodeProviderUnavailable
	default:
		return CodeInternal
	}
}

func New(status int, msg string, detail any) Response {
	return Response{
		Status: status,
		Error:  Body{Code: CodeFor(status), Message: msg},
		Detail: detail,
	}
}

// AbortWithError keeps err on the gin context for the logging middleware and writes the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort writes the envelope for rejections that carry no underlying error, such as missing
// credentials.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, New(status, msg, nil))
}
