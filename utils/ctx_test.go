package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query       string
		page, limit int
	}{
		{"", 1, 20},
		{"?page=3&limit=50", 3, 50},
		{"?page=-2&limit=0", 1, 20},
		{"?page=abc&limit=1000", 1, 20},
		{"?page=9223372036854775807&limit=100", MaxPage, 100},
		{"?page=4611686018427387905&limit=2", MaxPage, 2},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/products"+tc.query, nil)

			page, limit := Paging(c, 20, 100)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
			assert.Greater(t, (page-1)*limit+1, 0)
		})
	}
}
