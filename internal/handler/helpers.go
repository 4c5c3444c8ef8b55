package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"jandervidros/internal/apierror"
	"jandervidros/internal/apperror"
	"jandervidros/internal/dto"
	"jandervidros/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report JSON names ("minStock") instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithDetails("Invalid JSON body", err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads the :id path parameter. Zero and non-numeric ids are rejected.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// respondError maps an error from the service layer onto a status code.
// entity names the resource in 404 messages ("Product not found").
func respondError(c *gin.Context, err error, entity string) {
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &ve):
		details := map[string]string{}
		if ve.Field != "" {
			details[ve.Field] = ve.Message
		} else {
			details["constraint"] = ve.Message
		}
		c.JSON(http.StatusBadRequest, apierror.WithDetails(ve.Error(), details))
	case apperror.IsNotFound(err):
		c.JSON(http.StatusNotFound, apierror.New(entity+" not found"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid username or password"))
	default:
		// logged by middleware.ErrorHandler
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.WithDetails("Internal server error", err.Error()))
	}
}

func respondList[T any](c *gin.Context, items []T, err error, entity string) {
	if err != nil {
		respondError(c, err, entity)
		return
	}
	c.JSON(http.StatusOK, dto.List(items))
}
