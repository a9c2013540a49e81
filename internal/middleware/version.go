package middleware

import (
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
)

const apiVersionKey = "api_version"

var versionPrefix = regexp.MustCompile(`^/(v[0-9]+)(/|$)`)

// VersionMiddleware tags responses with the API and build version and rejects
// requests for API versions the server does not serve.
type VersionMiddleware struct {
	supported      map[string]bool
	defaultVersion string
	buildVersion   string
}

func NewVersionMiddleware(buildVersion string, versions ...string) *VersionMiddleware {
	if len(versions) == 0 {
		versions = []string{"v1"}
	}
	supported := make(map[string]bool, len(versions))
	for _, v := range versions {
		supported[v] = true
	}
	return &VersionMiddleware{
		supported:      supported,
		defaultVersion: versions[0],
		buildVersion:   buildVersion,
	}
}

// Group creates a version-specific route group with version headers applied
func (vm *VersionMiddleware) Group(e *echo.Echo, version string) *echo.Group {
	group := e.Group("/" + version)
	group.Use(vm.VersionHeader(version))
	return group
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			if vm.buildVersion != "" {
				c.Response().Header().Set("X-Stockwatch-Version", vm.buildVersion)
			}
			return next(c)
		}
	}
}

// APIVersionResolver stores the requested API version in the context.
// Unversioned paths get the default version.
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version := vm.defaultVersion
			if m := versionPrefix.FindStringSubmatch(c.Request().URL.Path); m != nil {
				if !vm.supported[m[1]] {
					return c.JSON(http.StatusNotFound, map[string]string{
						"error":              "Unsupported API version",
						"supported_versions": strings.Join(vm.SupportedVersions(), ", "),
					})
				}
				version = m[1]
			}
			c.Set(apiVersionKey, version)
			return next(c)
		}
	}
}

// SupportedVersions returns the served API versions in sorted order
func (vm *VersionMiddleware) SupportedVersions() []string {
	versions := make([]string, 0, len(vm.supported))
	for v := range vm.supported {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// APIVersion returns the version resolved for the request
func APIVersion(c echo.Context) string {
	v, _ := c.Get(apiVersionKey).(string)
	return v
}
