package server

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/component"
)

// Routes registered by RegisterDefaultEndpoints.
var systemPaths = map[string]bool{
	"/health":  true,
	"/info":    true,
	"/version": true,
}

var methodRank = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

func rank(method string) int {
	if i := slices.Index(methodRank, method); i >= 0 {
		return i
	}
	return len(methodRank)
}

// Routes lists the engine's routes for the startup summary: API routes
// first, then system routes, each by path and method.
func (s *Server) Routes() []component.Route {
	info := s.engine.Routes()
	slices.SortFunc(info, func(a, b gin.RouteInfo) int {
		if sa, sb := systemPaths[a.Path], systemPaths[b.Path]; sa != sb {
			if sa {
				return 1
			}
			return -1
		}
		return cmp.Or(strings.Compare(a.Path, b.Path), cmp.Compare(rank(a.Method), rank(b.Method)))
	})

	routes := make([]component.Route, len(info))
	for i, r := range info {
		name := handlerName(r.Handler)
		if systemPaths[r.Path] {
			name += " (system)"
		}
		routes[i] = component.Route{Method: r.Method, Path: r.Path, Handler: name}
	}
	return routes
}

// handlerName shortens Gin's handler symbol:
//
//	github.com/kbukum/speechkit/api.(*Handler).Transcribe-fm -> Handler.Transcribe
//	github.com/kbukum/speechkit/server/endpoint.Health.func1  -> health
func handlerName(symbol string) string {
	symbol = strings.TrimSuffix(symbol, "-fm")
	symbol = symbol[strings.LastIndexByte(symbol, '/')+1:]
	symbol = strings.NewReplacer("(*", "", ")", "").Replace(symbol)
	parts := strings.Split(symbol, ".")

	closure := false
	for len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		parts, closure = parts[:len(parts)-1], true
	}
	if closure {
		// Named after the constructor that returned it.
		return strings.ToLower(parts[len(parts)-1])
	}
	if len(parts) > 1 && parts[0] == strings.ToLower(parts[0]) {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
