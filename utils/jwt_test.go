package utils

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(42, "owner", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "owner", claims.Role)

	_, err = ParseToken(tok, "other")
	assert.Error(t, err)

	anon, err := GenerateToken(0, "buyer", "s3cret", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(anon, "s3cret")
	assert.Error(t, err)
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(&multipart.FileHeader{Filename: "a.PNG", Size: 10}, 100))
	assert.ErrorIs(t, ValidateImage(&multipart.FileHeader{Filename: "a.gif", Size: 10}, 100), ErrFileType)
	assert.ErrorIs(t, ValidateImage(&multipart.FileHeader{Filename: "a.jpg", Size: 101}, 100), ErrFileSize)
}
