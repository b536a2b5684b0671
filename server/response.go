package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/speechkit/errors"
)

// RespondWithError writes err as the JSON error envelope. An *AppError keeps
// its status and code; an exceeded body limit becomes 413; anything else is
// an internal error.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		tooLarge := apperrors.FileTooLarge(maxErr.Limit)
		c.JSON(tooLarge.HTTPStatus, tooLarge.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 JSON response with body as is.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// RespondAttachment sends content as a downloadable file.
func RespondAttachment(c *gin.Context, filename, contentType string, content []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, content)
}
