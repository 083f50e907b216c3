// internal/server/validate.go

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator 建立 validator，並讓 decimal 以 float64 參與 gt/lte 等比較。
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if val, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := val.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// decode 解析 JSON 請求並驗證結構標籤；失敗時已寫出 400。
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	if reflect.Indirect(reflect.ValueOf(dst)).Kind() != reflect.Struct {
		return true
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, err.Error())
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			msg := fmt.Sprintf("failed validation on '%s'", e.Tag())
			switch e.Tag() {
			case "required":
				msg = "this field is required"
			case "gt":
				msg = fmt.Sprintf("must be greater than %s", e.Param())
			case "gte":
				msg = fmt.Sprintf("must be at least %s", e.Param())
			case "lte":
				msg = fmt.Sprintf("must be at most %s", e.Param())
			case "max":
				msg = fmt.Sprintf("must be at most %s characters", e.Param())
			}
			fields[e.Field()] = msg
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: fields})
		return false
	}
	return true
}
