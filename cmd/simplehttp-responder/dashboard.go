package main

import (
	"bufio"
	"fmt"
	"net/http"

	"github.com/Cloud-Foundations/Dominator/lib/html"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/simplehttp"
)

type dashboardType struct {
	htmlWriter html.HtmlWriter
	responder  *simplehttp.Responder
}

func (d *dashboardType) statusHandler(w http.ResponseWriter,
	req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	writer := bufio.NewWriter(w)
	defer writer.Flush()
	fmt.Fprintln(writer, "<title>simplehttp-responder status page</title>")
	fmt.Fprintln(writer, "<body>")
	fmt.Fprintln(writer, "<center>")
	fmt.Fprintln(writer, "<h1>simplehttp-responder status page</h1>")
	fmt.Fprintln(writer, "</center>")
	html.WriteHeaderWithRequest(writer, req)
	fmt.Fprintln(writer, "<h3>")
	if resolver := d.responder.Registry().Active(); resolver == nil {
		fmt.Fprintln(writer, "No challenge resolver registered<br>")
	} else {
		fmt.Fprintf(writer, "Challenge resolver: %T<br>\n", resolver)
	}
	fmt.Fprintln(writer,
		`Metrics: <a href="prometheus-metrics">prometheus</a><br>`)
	d.htmlWriter.WriteHtml(writer)
	fmt.Fprintln(writer, "</h3>")
	fmt.Fprintln(writer, "<hr>")
	html.WriteFooter(writer)
	fmt.Fprintln(writer, "</body>")
}
