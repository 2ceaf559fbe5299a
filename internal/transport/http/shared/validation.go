package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"hrpro/internal/transport/http/api"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks struct tags and reports issues keyed by JSON field name.
// The boolean is true when at least one issue is a missing required field.
func Validate(payload any) ([]api.FieldIssue, bool) {
	err := validate.Struct(payload)
	if err == nil {
		return nil, false
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []api.FieldIssue{{Field: "", Reason: err.Error()}}, false
	}

	missing := false
	issues := make([]api.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		if isRequiredTag(fe.Tag()) {
			missing = true
		}
		issues = append(issues, api.FieldIssue{Field: fe.Field(), Reason: reason(fe)})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues, missing
}

func isRequiredTag(tag string) bool {
	return tag == "required" || strings.HasPrefix(tag, "required_")
}

func reason(fe validator.FieldError) string {
	if isRequiredTag(fe.Tag()) {
		return "campo obrigatório"
	}
	switch fe.Tag() {
	case "email":
		return "email inválido"
	case "datetime":
		return "data inválida, use o formato AAAA-MM-DD"
	case "gte":
		return "deve ser maior ou igual a " + fe.Param()
	case "lte":
		return "deve ser menor ou igual a " + fe.Param()
	case "oneof":
		return "deve ser um de: " + fe.Param()
	default:
		return "valor inválido"
	}
}

// Normalizer lets a request payload fill derived fields before validation.
type Normalizer interface {
	Normalize()
}

// DecodeJSON decodes the request body into dst and validates it. On failure
// it writes the 400/413 response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			api.Fail(w, http.StatusRequestEntityTooLarge, api.MsgBodyTooLarge, "")
		case errors.Is(err, io.EOF):
			api.Fail(w, http.StatusBadRequest, api.MsgInvalidBody, "corpo vazio")
		default:
			api.Fail(w, http.StatusBadRequest, api.MsgInvalidBody, err.Error())
		}
		return false
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	issues, missing := Validate(dst)
	if len(issues) == 0 {
		return true
	}
	errMsg := api.MsgInvalidFields
	if missing {
		errMsg = api.MsgMissingFields
	}
	names := make([]string, 0, len(issues))
	for _, is := range issues {
		names = append(names, is.Field)
	}
	api.FailFields(w, http.StatusBadRequest, errMsg, strings.Join(names, ", "), issues)
	return false
}
