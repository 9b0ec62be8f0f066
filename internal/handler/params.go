package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// pathParam binds a required simple-style path parameter.
func pathParam(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", validationf("invalid %s: %v", name, err)
	}
	if v == "" {
		return "", validationf("%s is required", name)
	}
	return v, nil
}

// queryParam binds an optional form-style query parameter. Absent yields "".
func queryParam(r *http.Request, name string) (string, error) {
	var v string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", validationf("invalid %s: %v", name, err)
	}
	return v, nil
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}
