/*
Package awssecretsmanager implements an ACME http-01 challenge Resolver which
reads responses from an AWS Secrets Manager secret.

The secret must hold a JSON object mapping challenge tokens to responses:

	{"dat-challenge": "dat-challenge.thumbprint"}

The secret is cached for a maximum age. An unknown token causes the secret to
be fetched again, at most once per second, so that newly published challenges
are picked up quickly.
*/
package awssecretsmanager

import (
	"sync"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

type Resolver struct {
	awsService secretsmanageriface.SecretsManagerAPI
	logger     log.DebugLogger
	maximumAge time.Duration
	secretId   string
	mutex      sync.Mutex // Protect everything below.
	fetchTime  time.Time
	responses  map[string]string
}

// New creates a *Resolver for the secret named by secretId. If secretId is
// not an ARN, the region is obtained from the EC2 metadata service.
// Fetched secrets are cached for maximumAge. If this is zero, 5 minutes is
// used.
// The logger is used for logging messages.
func New(secretId string, maximumAge time.Duration,
	logger log.DebugLogger) (*Resolver, error) {
	return newResolver(secretId, maximumAge, logger)
}

// NewWithService is like New, but uses the provided Secrets Manager client.
func NewWithService(awsService secretsmanageriface.SecretsManagerAPI,
	secretId string, maximumAge time.Duration,
	logger log.DebugLogger) *Resolver {
	return newResolverWithService(awsService, secretId, maximumAge, logger)
}

// Resolve returns the response for token, or nil if the secret has none.
// Failures to fetch the secret are returned as errors.
func (r *Resolver) Resolve(token string) (interface{}, error) {
	return r.resolve(token)
}

func (r *Resolver) String() string {
	return r.secretId
}
