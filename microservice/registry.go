package microservice

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownMicroservice = errors.New("unknown microservice")
	ErrRouteNotFound       = errors.New("route not found")
	ErrInvalidRoute        = errors.New("invalid route")
)

// Route describes one operation of a microservice
type Route struct {
	Name   string
	Method string
	Path   string
}

// Service is a registered microservice with its base url and routes
type Service struct {
	Microservice Microservice
	BaseURL      string
	Routes       map[string]Route
}

// Registry maps microservices to their routes. It is filled at startup
// and safe for concurrent reads afterwards.
type Registry struct {
	mu       sync.RWMutex
	services map[Microservice]*Service
}

func NewRegistry() *Registry {
	return &Registry{services: make(map[Microservice]*Service)}
}

// Register adds routes of a microservice. Registering the same microservice
// twice merges the routes, a repeated route name is rejected.
func (r *Registry) Register(m Microservice, baseURL string, routes ...Route) error {
	if m == None {
		return fmt.Errorf("%w: %s", ErrUnknownMicroservice, m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[m]
	if !ok {
		service = &Service{Microservice: m, Routes: make(map[string]Route, len(routes))}
	}
	normalized := make([]Route, 0, len(routes))
	seen := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		if route.Name == "" || route.Path == "" {
			return fmt.Errorf("%w: %s route %q has no name or path", ErrInvalidRoute, m, route.Name)
		}
		_, registered := service.Routes[route.Name]
		_, repeated := seen[route.Name]
		if registered || repeated {
			return fmt.Errorf("%w: %s route %q already registered", ErrInvalidRoute, m, route.Name)
		}
		seen[route.Name] = struct{}{}
		if route.Method == "" {
			route.Method = http.MethodGet
		}
		if !strings.HasPrefix(route.Path, "/") {
			route.Path = "/" + route.Path
		}
		normalized = append(normalized, route)
	}
	for _, route := range normalized {
		service.Routes[route.Name] = route
	}
	if baseURL != "" {
		service.BaseURL = strings.TrimRight(baseURL, "/")
	}
	r.services[m] = service
	return nil
}

// Route returns the registered route and the base url of its microservice
func (r *Registry) Route(m Microservice, name string) (Route, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	service, ok := r.services[m]
	if !ok {
		return Route{}, "", fmt.Errorf("%w: %s", ErrUnknownMicroservice, m)
	}
	route, ok := service.Routes[name]
	if !ok {
		return Route{}, "", fmt.Errorf("%w: %s/%s", ErrRouteNotFound, m, name)
	}
	return route, service.BaseURL, nil
}

// Services lists registrations ordered by microservice
func (r *Registry) Services() []Service {
	r.mu.RLock()
	defer r.mu.RUnlock()
	services := make([]Service, 0, len(r.services))
	for _, s := range r.services {
		routes := make(map[string]Route, len(s.Routes))
		for k, v := range s.Routes {
			routes[k] = v
		}
		services = append(services, Service{Microservice: s.Microservice, BaseURL: s.BaseURL, Routes: routes})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Microservice < services[j].Microservice })
	return services
}

const DrugTraffickingRoute = "DrugTrafficking"

// DefaultRoutes registers the routes of every known microservice.
// baseURLs is keyed by microservice, missing entries leave the base url empty.
func DefaultRoutes(baseURLs map[Microservice]string) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(DrugTrafficking, baseURLs[DrugTrafficking],
		Route{Name: DrugTraffickingRoute, Method: http.MethodGet, Path: "/api/DrugTrafficking"},
	); err != nil {
		return nil, err
	}
	return r, nil
}
