package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"dataconnector/internal/domain"
	"dataconnector/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ValidationDetail is one entry of a 422 response body.
type ValidationDetail struct {
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Type  string   `json:"type"`
	Input any      `json:"input,omitempty"`
}

// RespondDomainError maps pipeline errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	if domain.IsClientError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	RespondInternalError(c, err)
}

// RespondInternalError logs err with request context and sends a body that
// carries nothing but the request id.
func RespondInternalError(c *gin.Context, err error) {
	reqID := middleware.GetRequestID(c)
	log.Error().
		Err(err).
		Str("request_id", reqID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int64("elapsed_ms", middleware.Elapsed(c).Milliseconds()).
		Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail":     "Internal server error",
		"request_id": reqID,
	})
}

// RespondValidationErrors sends 422 with structured details.
func RespondValidationErrors(c *gin.Context, details []ValidationDetail) {
	log.Warn().
		Str("request_id", middleware.GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Interface("errors", details).
		Msg("validation error")
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

// BindQueryOrError binds query parameters and answers 422 on failure.
func BindQueryOrError[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		RespondValidationErrors(c, bindingDetails(c, dst, err))
		return false
	}
	return true
}

func bindingDetails(c *gin.Context, dst any, err error) []ValidationDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]ValidationDetail, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, ValidationDetail{
				Loc:   []string{"query", fe.Field()},
				Msg:   fieldErrorMessage(fe),
				Type:  fe.Tag(),
				Input: fe.Value(),
			})
		}
		return out
	}

	if out := parseFailures(c, dst); len(out) > 0 {
		return out
	}
	return []ValidationDetail{{Loc: []string{"query"}, Msg: err.Error(), Type: "parsing"}}
}

// parseFailures names the query parameters whose values do not parse into
// the integer or boolean fields of dst.
func parseFailures(c *gin.Context, dst any) []ValidationDetail {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	query := c.Request.URL.Query()
	var out []ValidationDetail
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		kind := fld.Type.Kind()
		if kind == reflect.Pointer {
			kind = fld.Type.Elem().Kind()
		}
		for _, raw := range query[name] {
			if raw == "" {
				continue
			}
			var perr error
			var want string
			switch kind {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				_, perr = strconv.ParseInt(raw, 10, 64)
				want = "int_parsing"
			case reflect.Bool:
				_, perr = strconv.ParseBool(raw)
				want = "bool_parsing"
			default:
				continue
			}
			if perr != nil {
				out = append(out, ValidationDetail{
					Loc:   []string{"query", name},
					Msg:   fmt.Sprintf("invalid value %q", raw),
					Type:  want,
					Input: raw,
				})
			}
		}
	}
	return out
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "min", "gte":
		return "Input should be greater than or equal to " + fe.Param()
	case "max", "lte":
		return "Input should be less than or equal to " + fe.Param()
	case "oneof":
		return "Input should be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
