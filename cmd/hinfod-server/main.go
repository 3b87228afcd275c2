package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hinfod/server/pkg/config"
	"github.com/hinfod/server/pkg/hinfo"
	"github.com/hinfod/server/pkg/sysinfo"
	"github.com/hinfod/server/pkg/version"
)

var (
	configFilename string
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-c config.yaml] PORT\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.StringVar(&configFilename, "c", "", "config file")
	flag.Parse()

	setLoggers(
		log.New(os.Stdout, "ERROR ", log.LstdFlags),
		log.New(os.Stdout, "WARNING ", log.LstdFlags),
		log.New(os.Stdout, "INFO ", log.LstdFlags),
		log.New(os.Stdout, "DEBUG ", log.LstdFlags),
	)

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	port, err := strconv.Atoi(flag.Arg(0))
	if err != nil || port < 1025 || port > 65535 {
		errorLogger.Printf("invalid port %q: must be a number in [1025, 65535]", flag.Arg(0))
		os.Exit(2)
	}

	cfg := &config.Config{}
	if configFilename != "" {
		infoLogger.Printf("loading configuration from %q", configFilename)
		cfg, err = config.LoadFromFile(configFilename)
		if err != nil {
			errorLogger.Printf("configuration load error: %v", err)
			os.Exit(2)
		}
	}

	promNamespace := cfg.Global.PromNamespace
	if promNamespace == "" {
		promNamespace = "hinfod"
	}
	hinfo.PromInitialize(promNamespace)

	provider, err := sysinfo.NewProvider(sysinfo.ProviderOptions{
		ProcMount:       cfg.Sysinfo.ProcMount,
		SampleInterval:  cfg.Sysinfo.SampleInterval,
		HostnameCommand: cfg.Sysinfo.HostnameCommand,
	})
	if err != nil {
		errorLogger.Printf("sysinfo provider error: %v", err)
		os.Exit(1)
	}

	srv, err := hinfo.NewServer(hinfo.ServerOptions{
		Name:        cfg.Server.Name,
		Address:     ":" + strconv.Itoa(port),
		ServerToken: cfg.Server.ServerToken,
		Sysinfo:     provider,
	})
	if err != nil {
		errorLogger.Printf("%v", err)
		os.Exit(1)
	}
	infoLogger.Printf("hinfod %s listening on %q", version.Full(), srv.Addr().String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	if cfg.Metrics.Address != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if e := http.ListenAndServe(cfg.Metrics.Address, mux); e != nil {
				errorLogger.Printf("metrics listener %q serve error: %v", cfg.Metrics.Address, e)
			}
		}()
	}

	if err = srv.Serve(ctx); err != nil {
		errorLogger.Printf("%v", err)
		os.Exit(1)
	}
}
