package request

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestResource(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "http://localhost/api/DrugTrafficking?x=1", nil)
	assert.Equal(t, "GET_/api/DrugTrafficking", Resource(r))
}

func TestRewind(t *testing.T) {
	r, _ := http.NewRequest(http.MethodPost, "http://localhost", strings.NewReader("payload"))
	first, _ := io.ReadAll(r.Body)
	assert.Equal(t, "payload", string(first))
	assert.NilError(t, Rewind(r))
	second, _ := io.ReadAll(r.Body)
	assert.Equal(t, "payload", string(second))
}

func TestRewindWithoutBody(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "http://localhost", nil)
	assert.NilError(t, Rewind(r))
	assert.Assert(t, r.Body == nil)
}
