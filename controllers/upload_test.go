package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageRequest(t *testing.T, filename string, size int) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x89}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/1/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func uploadContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func storedFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, "products"))
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	u := Uploads{Dir: dir, MaxSize: 1024}

	path, err := u.saveImage(uploadContext(imageRequest(t, "apple.png", 512)), "products")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/products/"))
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.Equal(t, 1, storedFiles(t, dir))

	_, err = u.saveImage(uploadContext(imageRequest(t, "apple.gif", 10)), "products")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = u.saveImage(uploadContext(imageRequest(t, "apple.png", 2048)), "products")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, 1, storedFiles(t, dir))
}

func TestSaveImage_BodyLimit(t *testing.T) {
	dir := t.TempDir()
	u := Uploads{Dir: dir, MaxSize: 1024}

	// declared length over the limit is refused before reading
	req := imageRequest(t, "big.png", 2*multipartOverhead)
	_, err := u.saveImage(uploadContext(req), "products")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	// unknown length is cut off while streaming
	req = imageRequest(t, "big.png", 2*multipartOverhead)
	req.ContentLength = -1
	_, err = u.saveImage(uploadContext(req), "products")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	assert.Equal(t, 0, storedFiles(t, dir))
}
