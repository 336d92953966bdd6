/*
Package simplehttp responds to ACME "simple HTTP" (http-01) domain validation
requests.

A Responder binds GET /.well-known/acme-challenge/{token} on a chi router and
owns a Registry holding at most one Resolver. Each request token is passed to
the registered Resolver and the value it returns selects the response:

	non-empty string:       200, Content-Type text/plain, body verbatim
	nil or any other falsy: 404, empty body
	any other value:        ErrInvalidResponseType, passed to the error handler
	non-nil error:          passed unchanged to the error handler

If no Resolver has been registered, every request gets a 404.

Usage:

	router := chi.NewRouter()
	responder := simplehttp.New(router, logger)
	responder.Register(simplehttp.ResolverFunc(
		func(token string) (interface{}, error) {
			return responses[token], nil
		}))
	http.ListenAndServe(":80", router)
*/
package simplehttp

import (
	"errors"
	"net/http"
	"reflect"
	"sync"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/go-chi/chi/v5"
)

// ErrInvalidResponseType is matched (using errors.Is) by the error produced
// when a Resolver returns a value which is neither falsy nor a string.
var ErrInvalidResponseType = errors.New(
	"unexpected challenge response type (require a string)")

// Resolver maps a challenge token to the response the Certificate Authority
// expects. Resolve should return a string, or nil (or another falsy value) if
// the token is unknown. A non-nil error is not converted to a 404: it is
// passed unchanged to the host error handler.
type Resolver interface {
	Resolve(token string) (interface{}, error)
}

// ResolverFunc adapts an ordinary function to a Resolver.
// Note that ResolverFunc values are not comparable.
type ResolverFunc func(token string) (interface{}, error)

func (f ResolverFunc) Resolve(token string) (interface{}, error) {
	return f(token)
}

// Registry holds the single active Resolver.
type Registry struct {
	rwMutex  sync.RWMutex // Protect everything below.
	resolver Resolver
}

// NewRegistry creates an empty *Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Active returns the registered Resolver, or nil if none was registered.
func (r *Registry) Active() Resolver {
	return r.active()
}

// Register replaces the active Resolver with resolver and returns resolver
// unchanged, so that it may be used inline:
//
//	loader := registry.Register(&myLoader{})
func (r *Registry) Register(resolver Resolver) Resolver {
	return r.register(resolver)
}

type OutcomeKind uint

const (
	OutcomeAbsent OutcomeKind = iota
	OutcomePresent
	OutcomeTypeMismatch
)

// Outcome is the interpretation of a value returned by a Resolver.
type Outcome struct {
	Kind OutcomeKind
	Text string       // Only for OutcomePresent.
	Type reflect.Type // Only for OutcomeTypeMismatch.
}

// Classify interprets the raw value returned by a Resolver. Falsy values (nil,
// nil pointers, false, numeric zero and empty strings, slices, maps and
// arrays) are absent, values with an underlying string type are present and
// everything else is a type mismatch.
func Classify(value interface{}) Outcome {
	return classify(value)
}

func (k OutcomeKind) String() string {
	return k.string()
}

// InvalidResponseTypeError reports a Resolver that returned neither a falsy
// value nor a string.
type InvalidResponseTypeError struct {
	Token string
	Type  reflect.Type
}

func (e *InvalidResponseTypeError) Error() string {
	return e.error()
}

func (e *InvalidResponseTypeError) Unwrap() error {
	return ErrInvalidResponseType
}

// Response describes the HTTP response for a challenge request.
type Response struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// Dispatcher passes challenge tokens to the active Resolver in a Registry.
type Dispatcher struct {
	logger   log.DebugLogger
	registry *Registry
}

// NewDispatcher creates a *Dispatcher which uses the active Resolver in
// registry. The logger is used for logging messages.
func NewDispatcher(registry *Registry, logger log.DebugLogger) *Dispatcher {
	return newDispatcher(registry, logger)
}

// Handle resolves token and returns the response to send. Resolver errors are
// returned unchanged and are never converted to a 404.
func (d *Dispatcher) Handle(token string) (*Response, error) {
	return d.handle(token)
}

// ErrorHandler writes the response for a request whose challenge could not be
// resolved.
type ErrorHandler func(w http.ResponseWriter, req *http.Request, err error)

type Options struct {
	// ErrorHandler is called when the Resolver fails or returns a value of the
	// wrong type. If nil, the error is logged and a 500 response is sent.
	ErrorHandler ErrorHandler
	Logger       log.DebugLogger // If nil, messages are discarded.
}

// Responder serves ACME challenge responses for one application.
type Responder struct {
	dispatcher   *Dispatcher
	errorHandler ErrorHandler
	logger       log.DebugLogger
	registry     *Registry
}

// New creates a *Responder with its own Registry and binds the ACME challenge
// route on router.
// The logger is used for logging messages.
func New(router chi.Router, logger log.DebugLogger) *Responder {
	responder := newResponder(Options{Logger: logger})
	responder.bind(router)
	return responder
}

// NewResponder creates a *Responder which is not yet bound to a router. Call
// Bind once the router is available.
func NewResponder(options Options) *Responder {
	return newResponder(options)
}

// Bind registers the ACME challenge route on router. Binding more than once
// to the same router is a configuration error.
func (r *Responder) Bind(router chi.Router) {
	r.bind(router)
}

func (r *Responder) Dispatcher() *Dispatcher {
	return r.dispatcher
}

// Register replaces the active Resolver, returning resolver unchanged.
func (r *Responder) Register(resolver Resolver) Resolver {
	return r.registry.Register(resolver)
}

func (r *Responder) Registry() *Registry {
	return r.registry
}
