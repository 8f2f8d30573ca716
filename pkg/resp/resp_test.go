package resp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"app error", apperr.Conflict("taken"), http.StatusConflict, "taken"},
		{"wrapped app error", fmt.Errorf("ctx: %w", apperr.Forbidden("no")), http.StatusForbidden, "no"},
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound, "resource not found"},
		{"duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, "resource already exists"},
		{"empty body", io.EOF, http.StatusBadRequest, "request body is required"},
		{"bad json", json.Unmarshal([]byte("{"), &struct{}{}), http.StatusBadRequest, "invalid request body"},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := Classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestClassify_ValidationErrors(t *testing.T) {
	type input struct {
		Email string `validate:"required,email"`
		Age   int    `validate:"gte=18"`
	}
	err := validator.New().Struct(input{Email: "nope", Age: 3})
	require.Error(t, err)

	status, msg, errs := Classify(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", msg)

	fields, ok := errs.([]apperr.FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "Email must be a valid email", fields[0].Message)
	assert.Equal(t, "Age must be greater than or equal to 18", fields[1].Message)
}
