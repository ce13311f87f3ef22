package authentication

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"gotest.tools/v3/assert"
)

func getLoginServer(t *testing.T, status int, body string) (*httptest.Server, *common.LoginCredentials) {
	received := new(common.LoginCredentials)
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != DefaultLoginPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(received)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s, received
}

func TestLogin(t *testing.T) {
	s, received := getLoginServer(t, http.StatusOK, `{"token":"QpwL5tke4Pnpja7X4"}`)
	service := NewService(s.URL, "", time.Second)
	defer service.Close()
	token, err := service.Login(context.Background(), common.LoginCredentials{Email: "eve.holt@reqres.in", Password: "cityslicka"})
	assert.NilError(t, err)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", token)
	assert.Equal(t, "eve.holt@reqres.in", received.Email)
	assert.Equal(t, "cityslicka", received.Password)
}

func TestLoginRejected(t *testing.T) {
	s, _ := getLoginServer(t, http.StatusBadRequest, `{"error":"user not found"}`)
	service := NewService(s.URL, "", time.Second)
	defer service.Close()
	_, err := service.Login(context.Background(), common.LoginCredentials{Email: "x", Password: "y"})
	assert.ErrorContains(t, err, "HTTP 400")
}

func TestLoginEmptyToken(t *testing.T) {
	s, _ := getLoginServer(t, http.StatusOK, `{}`)
	service := NewService(s.URL, "", time.Second)
	defer service.Close()
	_, err := service.Login(context.Background(), common.LoginCredentials{Email: "x", Password: "y"})
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestLoginCanceled(t *testing.T) {
	s, _ := getLoginServer(t, http.StatusOK, `{"token":"abc"}`)
	service := NewService(s.URL, "", time.Second)
	defer service.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := service.Login(ctx, common.LoginCredentials{Email: "x", Password: "y"})
	assert.ErrorIs(t, err, context.Canceled)
}
