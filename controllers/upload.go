package controllers

import (
	"errors"
	"net/http"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

// room for multipart boundaries and headers on top of the file itself
const multipartOverhead = 64 << 10

// Uploads stores multipart images posted in the "image" field.
type Uploads struct {
	Dir     string
	MaxSize int64
}

func (u Uploads) saveImage(c *gin.Context, sub string) (string, error) {
	if u.MaxSize > 0 {
		limit := u.MaxSize + multipartOverhead
		if c.Request.ContentLength > limit {
			return "", apperr.BadRequest(utils.ErrFileSize.Error())
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", apperr.BadRequest(utils.ErrFileSize.Error())
		}
		return "", apperr.BadRequest("image file is required")
	}
	if err := utils.ValidateImage(fh, u.MaxSize); err != nil {
		if errors.Is(err, utils.ErrFileType) || errors.Is(err, utils.ErrFileSize) {
			return "", apperr.BadRequest(err.Error())
		}
		return "", err
	}
	return utils.SaveUpload(c, fh, u.Dir, sub)
}
