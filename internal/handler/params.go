package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Parameter binding uses the same runtime helpers generated oapi-codegen
// servers call, so path and query values follow the OpenAPI styles.

func pathOptions() runtime.BindStyledParameterOptions {
	return runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}
}

// pathUUID binds a required UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id, pathOptions())
	return id, err
}

// pathString binds a required string path parameter.
func pathString(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v, pathOptions())
	return v, err
}

// queryDate binds an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, name string) (*openapi_types.Date, error) {
	var d *openapi_types.Date
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &d)
	return d, err
}

// queryInt binds an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	var n *int
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &n)
	return n, err
}
