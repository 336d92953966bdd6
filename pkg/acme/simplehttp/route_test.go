package simplehttp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cloud-Foundations/Dominator/lib/log/testlogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func makeRouter(t *testing.T) (*chi.Mux, *Responder) {
	router := chi.NewRouter()
	return router, New(router, testlogger.New(t))
}

func TestRouteIndex(t *testing.T) {
	router, _ := makeRouter(t)
	assert.Equal(t, http.StatusNotFound,
		get(router, "/.well-known/acme-challenge").Code)
	assert.Equal(t, http.StatusNotFound,
		get(router, "/.well-known/acme-challenge/").Code)
}

func TestRouteChallengeMissing(t *testing.T) {
	router, _ := makeRouter(t)
	recorder := get(router, "/.well-known/acme-challenge/foobar")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}

func TestRouteChallengeGood(t *testing.T) {
	router, responder := makeRouter(t)
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		if token == "dat-challenge" {
			return "foobar", nil
		}
		return nil, nil
	}))
	recorder := get(router, "/.well-known/acme-challenge/dat-challenge")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/plain", recorder.Header().Get("Content-Type"))
	assert.Equal(t, []byte("foobar"), recorder.Body.Bytes())
	recorder = get(router, "/.well-known/acme-challenge/other")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}

func TestRouteContentTypeNotSniffed(t *testing.T) {
	router, responder := makeRouter(t)
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		return "<html><body>not html</body></html>", nil
	}))
	recorder := get(router, "/.well-known/acme-challenge/html")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/plain", recorder.Header().Get("Content-Type"))
}

func TestRouteBadReturnType(t *testing.T) {
	var handled error
	router := chi.NewRouter()
	responder := NewResponder(Options{
		ErrorHandler: func(w http.ResponseWriter, req *http.Request,
			err error) {
			handled = err
			w.WriteHeader(http.StatusTeapot)
		},
		Logger: testlogger.New(t),
	})
	responder.Bind(router)
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		return struct{}{}, nil
	}))
	recorder := get(router, "/.well-known/acme-challenge/foobar")
	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.True(t, errors.Is(handled, ErrInvalidResponseType))
}

func TestRouteResolverError(t *testing.T) {
	router, responder := makeRouter(t)
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		return nil, errTestResolver
	}))
	recorder := get(router, "/.well-known/acme-challenge/foobar")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRouteResolverPanic(t *testing.T) {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	responder := New(router, testlogger.New(t))
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		panic(errTestResolver)
	}))
	recorder := get(router, "/.well-known/acme-challenge/foobar")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRouteGetOnly(t *testing.T) {
	router, responder := makeRouter(t)
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		return "foobar", nil
	}))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost,
		"/.well-known/acme-challenge/foobar", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestRouteNestedSegment(t *testing.T) {
	router, responder := makeRouter(t)
	responder.Register(ResolverFunc(func(token string) (interface{}, error) {
		return "foobar", nil
	}))
	assert.Equal(t, http.StatusNotFound,
		get(router, "/.well-known/acme-challenge/foo/bar").Code)
}

func TestRespondersAreIndependent(t *testing.T) {
	router1, responder1 := makeRouter(t)
	router2, _ := makeRouter(t)
	returned := responder1.Register(&countingResolver{response: "one"})
	require.NotNil(t, returned)
	assert.Equal(t, http.StatusOK,
		get(router1, "/.well-known/acme-challenge/token").Code)
	assert.Equal(t, http.StatusNotFound,
		get(router2, "/.well-known/acme-challenge/token").Code)
}

func TestResponderRegisterReturnsResolver(t *testing.T) {
	_, responder := makeRouter(t)
	resolver := &countingResolver{}
	assert.Same(t, resolver, responder.Register(resolver))
	assert.Same(t, resolver, responder.Registry().Active())
	response, err := responder.Dispatcher().Handle("token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Equal(t, 1, resolver.calls)
}
