package router

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// registerPublicRoutes serves files from dir for any GET or HEAD that no
// other route matched. A missing file is a 404.
func registerPublicRoutes(r *echo.Echo, dir string) {
	r.Match([]string{http.MethodGet, http.MethodHead}, "/*", func(c echo.Context) error {
		name := path.Clean("/" + c.Param("*"))
		return c.File(filepath.Join(dir, filepath.FromSlash(name)))
	})
}
