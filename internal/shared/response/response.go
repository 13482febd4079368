package response

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/query"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *query.Meta `json:"meta,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta query.Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    &meta,
	})
}

// FromError maps a domain error onto the wire by its kind. Unexpected
// errors are logged and answered with a generic message only.
func FromError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.Unexpected {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Err(err).
			Msg("unexpected error")
	}

	c.JSON(apperror.HTTPStatus(kind), Response{
		Success: false,
		Error: &Error{
			Code:    apperror.Code(kind),
			Message: apperror.MessageOf(err),
		},
	})
}

// AbortWithError is FromError for middleware, aborting the chain.
func AbortWithError(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}
