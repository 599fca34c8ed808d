// Command etl runs the EcoBottle warehouse batch: it extracts the raw CSV
// tables, reshapes them into the star schema, and writes one CSV per produced
// table. The CLI layer stays thin; it loads and lints the configuration,
// optionally initializes a metrics backend, and executes the run.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"dwetl/internal/config"
	"dwetl/internal/metrics"
	"dwetl/internal/metrics/prompush"
)

func main() {
	var (
		cfgPath           string
		rawDir            string
		outDir            string
		jobName           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "", "pipeline config JSON path (optional; flags apply when empty)")
	flag.StringVar(&rawDir, "raw", "RAW", "directory holding the raw CSV tables")
	flag.StringVar(&outDir, "out", "DW", "directory the warehouse tables are written to")
	flag.StringVar(&jobName, "job", "ecobottle_dw", "job name for logs and metrics")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, none; empty consults METRICS_BACKEND)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	p := config.Pipeline{
		Job:     jobName,
		Extract: config.Extract{Dir: rawDir},
		Load:    config.Load{Dir: outDir},
		Parser:  config.Parser{Options: config.Options{}},
	}
	if cfgPath != "" {
		f, err := os.Open(cfgPath)
		if err != nil {
			fatalf("open config: %v", err)
		}
		if err := json.NewDecoder(f).Decode(&p); err != nil {
			f.Close()
			fatalf("decode config: %v", err)
		}
		f.Close()
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	backendName := resolveMetricsBackend(metricsBackendFlg, os.Getenv("METRICS_BACKEND"))
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(p.Job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v backend=%v job=%v", gwURL, backendName, p.Job)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	start := time.Now()
	if *verbose {
		log.Printf("pipeline: job=%s raw=%s out=%s", p.Job, p.Extract.Dir, p.Load.Dir)
	}

	if err := run(p); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// resolveMetricsBackend picks the metrics backend: the flag wins when set,
// then the METRICS_BACKEND environment value, then "none".
func resolveMetricsBackend(flagVal, envVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	return "none"
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
