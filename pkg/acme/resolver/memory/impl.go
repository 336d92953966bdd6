package memory

import (
	"errors"
	"strings"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/acmeresponder/pkg/constants"
	"golang.org/x/crypto/acme"
)

func newResolver(logger log.DebugLogger) *Resolver {
	if logger == nil {
		logger = nulllogger.New()
	}
	return &Resolver{
		logger:    logger,
		responses: make(map[string]string),
	}
}

func (r *Resolver) cleanup() {
	r.rwMutex.Lock()
	r.responses = make(map[string]string)
	r.rwMutex.Unlock()
	r.logger.Debugln(1, "cleaned up challenge responses")
}

func (r *Resolver) resolve(token string) (interface{}, error) {
	r.rwMutex.RLock()
	response, ok := r.responses[token]
	r.rwMutex.RUnlock()
	if !ok {
		return nil, nil
	}
	return response, nil
}

func (r *Resolver) respond(key, value string) error {
	if !strings.HasPrefix(key, constants.AcmePath+"/") {
		return errors.New("not an ACME challenge response")
	}
	token := strings.TrimPrefix(key, constants.AcmePath+"/")
	if token == "" || strings.Contains(token, "/") {
		return errors.New("bad ACME challenge token in: " + key)
	}
	r.setResponse(token, value)
	return nil
}

func (r *Resolver) respondToChallenge(client *acme.Client,
	challenge *acme.Challenge) error {
	response, err := client.HTTP01ChallengeResponse(challenge.Token)
	if err != nil {
		return err
	}
	return r.respond(client.HTTP01ChallengePath(challenge.Token), response)
}

func (r *Resolver) setResponse(token, value string) {
	r.rwMutex.Lock()
	r.responses[token] = value
	r.rwMutex.Unlock()
	r.logger.Debugf(1, "recorded response for token: %s\n", token)
}
