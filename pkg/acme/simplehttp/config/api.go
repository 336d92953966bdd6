/*
Package config creates a simplehttp.Responder and its Resolver based on
configuration data.
*/
package config

import (
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/simplehttp"
	"github.com/go-chi/chi/v5"
)

type Config struct {
	AdminPort        uint16            `yaml:"admin_port"` // 0: no dashboard.
	AwsSecretId      string            `yaml:"aws_secret_id"`
	HttpPort         uint16            `yaml:"http_port"` // Def: 80.
	Redirect         bool              `yaml:"redirect"`
	RedirectTLSPort  uint16            `yaml:"redirect_tls_port"`
	Responses        map[string]string `yaml:"responses"` // Key: token.
	SecretMaximumAge time.Duration     `yaml:"secret_maximum_age"`
}

// Load reads a YAML configuration from filename.
func Load(filename string) (Config, error) {
	return load(filename)
}

// New creates a chi router with a *simplehttp.Responder bound to it. If
// AwsSecretId is set, responses are read from AWS Secrets Manager, else any
// static Responses are served. With neither, no Resolver is registered and
// every challenge request gets a 404.
// The logger is used for logging messages.
func New(config Config, logger log.DebugLogger) (
	chi.Router, *simplehttp.Responder, error) {
	return newResponder(config, logger)
}

func (config *Config) SetDefaults() {
	config.setDefaults()
}
