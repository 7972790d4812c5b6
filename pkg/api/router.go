package api

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// DefaultPrefix is the path prefix collections are mounted under.
const DefaultPrefix = "/api/v2"

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "Authorization"}
)

// Router holds the root mux. Collections are registered on it directly
// with the prefix in the path template so wrong verbs answer 405.
type Router struct {
	root   *mux.Router
	prefix string
}

// NewRouter builds a router with recovery and request logging.
// An empty prefix mounts collections at the root.
func NewRouter(prefix string, logger *slog.Logger) *Router {
	root := mux.NewRouter()
	root.Use(Recoverer(logger), RequestLogger(logger))
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, logger, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, logger, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed on "+r.URL.Path)
	})
	return &Router{root: root, prefix: strings.TrimRight(prefix, "/")}
}

// HandleGet registers an auxiliary read-only handler on the root router.
func (r *Router) HandleGet(path string, h http.Handler) {
	r.root.Handle(path, h).Methods(http.MethodGet)
}

// Handler returns the complete handler, CORS included. CORS wraps the
// root because mux rejects OPTIONS before route middleware runs.
func (r *Router) Handler() http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods(corsMethods),
		handlers.AllowedHeaders(corsHeaders),
		handlers.MaxAge(600),
		handlers.OptionStatusCode(http.StatusNoContent),
	)(r.root)
}

// Route is one registered method/path pair.
type Route struct {
	Methods []string
	Path    string
}

// Routes lists the registered routes in path order.
func (r *Router) Routes() ([]Route, error) {
	var routes []Route
	err := r.root.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		routes = append(routes, Route{Methods: methods, Path: tpl})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	return routes, nil
}

// StateHandler serves a JSON snapshot of every component's state.
func StateHandler(components map[string]introspection.Introspectable, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]any, len(components))
		for name, c := range components {
			out[name] = c.State()
		}
		writeJSON(w, logger, http.StatusOK, out)
	})
}
