package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/resolver/awssecretsmanager"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/resolver/memory"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/simplehttp"
	"github.com/Cloud-Foundations/acmeresponder/pkg/constants"
	"github.com/Cloud-Foundations/acmeresponder/pkg/net/redirect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v2"
)

func load(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	decoder.SetStrict(true)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error decoding: %s: %s", filename, err)
	}
	config.setDefaults()
	return config, nil
}

func (config *Config) setDefaults() {
	if config.HttpPort < 1 {
		config.HttpPort = constants.ResponderPortNumber
	}
}

func newResolver(config Config,
	logger log.DebugLogger) (simplehttp.Resolver, error) {
	if config.AwsSecretId != "" {
		if len(config.Responses) > 0 {
			return nil,
				errors.New("aws_secret_id and responses are mutually exclusive")
		}
		return awssecretsmanager.New(config.AwsSecretId,
			config.SecretMaximumAge, logger)
	}
	if len(config.Responses) < 1 {
		return nil, nil
	}
	resolver := memory.New(logger)
	for token, response := range config.Responses {
		resolver.SetResponse(token, response)
	}
	return resolver, nil
}

func newResponder(config Config, logger log.DebugLogger) (
	chi.Router, *simplehttp.Responder, error) {
	if logger == nil {
		logger = nulllogger.New()
	}
	resolver, err := newResolver(config, logger)
	if err != nil {
		return nil, nil, err
	}
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if config.Redirect {
		router.NotFound(
			(&redirect.Handler{TLSPort: config.RedirectTLSPort}).ServeHTTP)
	}
	responder := simplehttp.New(router, logger)
	if resolver != nil {
		responder.Register(resolver)
		logger.Debugf(0, "registered challenge resolver: %T\n", resolver)
	}
	return router, responder, nil
}
