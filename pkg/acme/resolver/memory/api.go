/*
Package memory implements an in-memory ACME http-01 challenge Resolver.

The Resolver also implements the Respond/Cleanup responder contract used by
certificate managers, so a certificate manager running in the same process can
publish key authorisations which are then served by a simplehttp.Responder.
*/
package memory

import (
	"sync"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"golang.org/x/crypto/acme"
)

type Resolver struct {
	logger    log.DebugLogger
	rwMutex   sync.RWMutex      // Protect everything below.
	responses map[string]string // Key: token.
}

// New creates an empty *Resolver. The logger is used for logging messages.
func New(logger log.DebugLogger) *Resolver {
	return newResolver(logger)
}

// Cleanup removes all responses.
func (r *Resolver) Cleanup() {
	r.cleanup()
}

// Resolve returns the response recorded for token, or nil if there is none.
func (r *Resolver) Resolve(token string) (interface{}, error) {
	return r.resolve(token)
}

// Respond records value as the response for the challenge path key, which
// must be of the form /.well-known/acme-challenge/<token>.
func (r *Resolver) Respond(key, value string) error {
	return r.respond(key, value)
}

// RespondToChallenge computes the key authorisation for an http-01 challenge
// using the account key in client and records it.
func (r *Resolver) RespondToChallenge(client *acme.Client,
	challenge *acme.Challenge) error {
	return r.respondToChallenge(client, challenge)
}

// SetResponse records value as the response for token.
func (r *Resolver) SetResponse(token, value string) {
	r.setResponse(token, value)
}
