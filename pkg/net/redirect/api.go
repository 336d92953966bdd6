/*
Package redirect implements a HTTP handler which sends clients to HTTPS.
*/
package redirect

import (
	"net/http"
)

// Handler redirects GET and HEAD requests to HTTPS with a 302 Found status
// code, preserving the original request path and query. It responds with 400
// Bad Request to all other HTTP methods.
type Handler struct {
	// TLSPort is the port to redirect to. If zero, the default (443) is used.
	TLSPort uint16
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.serveHTTP(w, req)
}
