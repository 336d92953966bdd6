package simplehttp

import (
	"net/http"

	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/Cloud-Foundations/acmeresponder/pkg/constants"
	"github.com/go-chi/chi/v5"
)

func newResponder(options Options) *Responder {
	logger := options.Logger
	if logger == nil {
		logger = nulllogger.New()
	}
	registry := NewRegistry()
	responder := &Responder{
		dispatcher:   newDispatcher(registry, logger),
		errorHandler: options.ErrorHandler,
		logger:       logger,
		registry:     registry,
	}
	if responder.errorHandler == nil {
		responder.errorHandler = responder.defaultErrorHandler
	}
	return responder
}

func (r *Responder) bind(router chi.Router) {
	router.Get(constants.AcmeChallengeRoute, r.serveChallenge)
}

func (r *Responder) defaultErrorHandler(w http.ResponseWriter,
	req *http.Request, err error) {
	r.logger.Printf("%s: error resolving challenge: %s\n", req.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError)
}

func (r *Responder) serveChallenge(w http.ResponseWriter, req *http.Request) {
	token := chi.URLParam(req, constants.AcmeTokenParam)
	r.logger.Debugf(1, "source: %s, method: %s, token: %s\n",
		req.RemoteAddr, req.Method, token)
	response, err := r.dispatcher.Handle(token)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}
	writeResponse(w, response)
}

func writeResponse(w http.ResponseWriter, response *Response) {
	if response.ContentType != "" {
		w.Header().Set("Content-Type", response.ContentType)
	}
	w.WriteHeader(response.StatusCode)
	if len(response.Body) > 0 {
		w.Write(response.Body)
	}
}
