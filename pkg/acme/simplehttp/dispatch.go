package simplehttp

import (
	"net/http"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/acmeresponder/pkg/constants"
)

func newDispatcher(registry *Registry, logger log.DebugLogger) *Dispatcher {
	if logger == nil {
		logger = nulllogger.New()
	}
	return &Dispatcher{logger: logger, registry: registry}
}

func notFound() *Response {
	return &Response{StatusCode: http.StatusNotFound}
}

// Resolver panics are not recovered: they belong to the host server.
func (d *Dispatcher) handle(token string) (*Response, error) {
	resolver := d.registry.Active()
	if resolver == nil {
		d.logger.Debugln(1, "no challenge resolver registered, ignoring request")
		countOutcome(outcomeNoResolver)
		return notFound(), nil
	}
	value, err := resolver.Resolve(token)
	if err != nil {
		countOutcome(outcomeFault)
		return nil, err
	}
	outcome := classify(value)
	countOutcome(outcome.Kind.String())
	switch outcome.Kind {
	case OutcomeAbsent:
		d.logger.Debugf(1, "no challenge response for token: %s\n", token)
		return notFound(), nil
	case OutcomePresent:
		return &Response{
			Body:        []byte(outcome.Text),
			ContentType: constants.ChallengeContentType,
			StatusCode:  http.StatusOK,
		}, nil
	}
	return nil, &InvalidResponseTypeError{Token: token, Type: outcome.Type}
}
