package redirect

import (
	"net"
	"net/http"
	"strconv"
)

func stripPort(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport
	}
	return host
}

func (h *Handler) serveHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		http.Error(w, "Use HTTPS", http.StatusBadRequest)
		return
	}
	host := stripPort(req.Host)
	if h.TLSPort > 0 && h.TLSPort != 443 {
		host = net.JoinHostPort(host, strconv.FormatUint(uint64(h.TLSPort), 10))
	}
	http.Redirect(w, req, "https://"+host+req.URL.RequestURI(),
		http.StatusFound)
}
