package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/flags/loadflags"
	"github.com/Cloud-Foundations/Dominator/lib/html"
	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/serverlogger"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/simplehttp"
	"github.com/Cloud-Foundations/acmeresponder/pkg/acme/simplehttp/config"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type htmlWriterLogger interface {
	html.HtmlWriter
	log.DebugLogger
}

var (
	adminPortNum = flag.Uint("adminPortNum", 0,
		"admin/dashboard port number to listen on (overrides config)")
	configFile = flag.String("configFile",
		"/etc/simplehttp-responder/config.yaml",
		"YAML configuration file")
	portNum = flag.Uint("portNum", 0,
		"port number to listen on for http-01 challenges (overrides config)")
)

func doMain() int {
	flag.Usage = printUsage
	if err := loadflags.LoadForDaemon("simplehttp-responder"); err != nil {
		printUsage()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	flag.Parse()
	tricorder.RegisterFlags()
	logger := serverlogger.New("")
	if err := runResponder(logger); err != nil {
		logger.Println(err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(doMain())
}

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "Usage: simplehttp-responder [flags...]")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Resolvers (selected by the configuration file):")
	fmt.Fprintln(w, "  aws_secret_id: read responses from AWS Secrets Manager")
	fmt.Fprintln(w, "  responses:     serve a static token->response table")
}

func runResponder(logger htmlWriterLogger) error {
	if *configFile == "" {
		return errors.New("no configuration file specified")
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *portNum > 0 {
		cfg.HttpPort = uint16(*portNum)
	}
	if *adminPortNum > 0 {
		cfg.AdminPort = uint16(*adminPortNum)
	}
	router, responder, err := config.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := setupDashboard(cfg.AdminPort, responder, logger); err != nil {
		return err
	}
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HttpPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	logger.Printf("serving ACME http-01 challenges on port: %d\n",
		cfg.HttpPort)
	return server.ListenAndServe()
}

func setupDashboard(portNum uint16, responder *simplehttp.Responder,
	logger htmlWriterLogger) error {
	if portNum < 1 {
		return nil
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", portNum))
	if err != nil {
		return err
	}
	dashboard := &dashboardType{htmlWriter: logger, responder: responder}
	html.HandleFunc("/", dashboard.statusHandler)
	http.Handle("/prometheus-metrics", promhttp.Handler())
	go func() {
		if err := http.Serve(listener, nil); err != nil {
			logger.Println(err)
		}
	}()
	return nil
}
