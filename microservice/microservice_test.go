package microservice

import (
	"net/http"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, DrugTrafficking, Parse("DrugTrafficking"))
	assert.Equal(t, None, Parse("None"))
	assert.Equal(t, None, Parse(""))
	assert.Equal(t, None, Parse("drugtrafficking"))
	assert.Equal(t, None, Parse("1"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "DrugTrafficking", DrugTrafficking.String())
	assert.Equal(t, "None", Microservice(99).String())
	for _, m := range All() {
		assert.Equal(t, m, Parse(m.String()))
	}
}

func TestDefaultRoutes(t *testing.T) {
	registry, err := DefaultRoutes(map[Microservice]string{DrugTrafficking: "http://localhost:8080/"})
	assert.NilError(t, err)
	route, baseURL, err := registry.Route(DrugTrafficking, DrugTraffickingRoute)
	assert.NilError(t, err)
	assert.Equal(t, "http://localhost:8080", baseURL)
	assert.Equal(t, http.MethodGet, route.Method)
	assert.Equal(t, "/api/DrugTrafficking", route.Path)
}

func TestRegisterRejectsNone(t *testing.T) {
	err := NewRegistry().Register(None, "", Route{Name: "x", Path: "/x"})
	assert.ErrorIs(t, err, ErrUnknownMicroservice)
}

func TestRegisterRejectsInvalidRoutes(t *testing.T) {
	registry := NewRegistry()
	assert.ErrorIs(t, registry.Register(DrugTrafficking, "", Route{Name: "x"}), ErrInvalidRoute)
	assert.ErrorIs(t, registry.Register(DrugTrafficking, "", Route{Name: "x", Path: "/x"}, Route{Name: "x", Path: "/y"}), ErrInvalidRoute)
	assert.Equal(t, 0, len(registry.Services()))

	assert.NilError(t, registry.Register(DrugTrafficking, "", Route{Name: "x", Path: "x"}))
	assert.ErrorIs(t, registry.Register(DrugTrafficking, "", Route{Name: "x", Path: "/x"}), ErrInvalidRoute)
	route, _, err := registry.Route(DrugTrafficking, "x")
	assert.NilError(t, err)
	assert.Equal(t, "/x", route.Path)
	assert.Equal(t, http.MethodGet, route.Method)
}

func TestRouteNotFound(t *testing.T) {
	registry, _ := DefaultRoutes(nil)
	_, _, err := registry.Route(DrugTrafficking, "missing")
	assert.ErrorIs(t, err, ErrRouteNotFound)
	_, _, err = registry.Route(None, DrugTraffickingRoute)
	assert.ErrorIs(t, err, ErrUnknownMicroservice)
}

func TestServicesAreCopies(t *testing.T) {
	registry, _ := DefaultRoutes(nil)
	services := registry.Services()
	assert.Equal(t, 1, len(services))
	delete(services[0].Routes, DrugTraffickingRoute)
	_, _, err := registry.Route(DrugTrafficking, DrugTraffickingRoute)
	assert.NilError(t, err)
}
