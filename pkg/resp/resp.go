package resp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "data": data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg, "data": data})
}

func Fail(c *gin.Context, status int, msg string, errs any) {
	body := gin.H{"success": false, "message": msg}
	if errs != nil {
		body["errors"] = errs
	}
	c.AbortWithStatusJSON(status, body)
}

func BadRequest(c *gin.Context, msg string)   { Fail(c, http.StatusBadRequest, msg, nil) }
func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg, nil) }
func Forbidden(c *gin.Context, msg string)    { Fail(c, http.StatusForbidden, msg, nil) }
func NotFound(c *gin.Context, msg string)     { Fail(c, http.StatusNotFound, msg, nil) }

// Error renders err with the status of its kind.
func Error(c *gin.Context, err error) {
	status, msg, errs := Classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	Fail(c, status, msg, errs)
}

// Classify maps err to (status, message, field errors).
func Classify(err error) (int, string, any) {
	if e, ok := apperr.As(err); ok {
		if len(e.Fields) > 0 {
			return e.Status, e.Message, e.Fields
		}
		return e.Status, e.Message, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, "validation failed", FieldErrors(verrs)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return http.StatusBadRequest, "invalid request body", nil
	}

	switch {
	case errors.Is(err, io.EOF):
		return http.StatusBadRequest, "request body is required", nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "resource not found", nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "resource already exists", nil
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, "referenced resource does not exist", nil
	}
	return http.StatusInternalServerError, "internal server error", nil
}

func FieldErrors(verrs validator.ValidationErrors) []apperr.FieldError {
	out := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperr.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
