package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pathscope/pathscope/pkg/facts"
	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/graphml"
	"github.com/pathscope/pathscope/pkg/logging"
	"github.com/pathscope/pathscope/pkg/metrics"
	"github.com/pathscope/pathscope/pkg/pipeline"
	"github.com/pathscope/pathscope/pkg/results"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	input := flag.String("input", ".", "GraphML file or directory of .graphml files")
	outDir := flag.String("out", "", "Output directory for .facts files (overrides config)")
	compress := flag.Bool("compress", false, "Snappy-compress output files")
	policy := flag.String("policy", "", "Classification policy: attribute or topology (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	logger.Info("pathscope starting", logging.String("input", *input))

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = pipeline.LoadConfig(*configPath)
		if err != nil {
			logger.Error("failed to load config", logging.Error(err))
			os.Exit(1)
		}
	}
	if *policy != "" {
		cfg.Policy = *policy
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *compress {
		cfg.Output.Compress = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}

	registry := metrics.DefaultRegistry()
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(
			registry.GetPrometheusRegistry(),
			promhttp.HandlerOpts{},
		))
		go func() {
			logger.Info("metrics server listening", logging.String("addr", *metricsAddr))
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", logging.Error(err))
			}
		}()
	}

	analyzer := pipeline.New(cfg, logger, registry)
	report, err := analyzer.Run(loadInput(*input))
	if err != nil {
		printOutcomes(report)
		logger.Error("analysis aborted", logging.Error(err))
		os.Exit(1)
	}

	if err := writeFacts(cfg, report, logger); err != nil {
		logger.Error("failed to write facts", logging.Error(err))
		os.Exit(1)
	}

	printOutcomes(report)
	if report.Summary.Passed < report.Summary.Total {
		os.Exit(1)
	}
}

// loadInput builds a pipeline loader over a GraphML file or directory.
func loadInput(path string) pipeline.Loader {
	return func() ([]graph.NodeSpec, []graph.EdgeSpec, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}

		var doc *graphml.Document
		if info.IsDir() {
			doc, err = graphml.LoadDir(path)
		} else {
			doc, err = graphml.LoadFile(path)
		}
		if err != nil {
			return nil, nil, err
		}
		return doc.Nodes, doc.Edges, nil
	}
}

func writeFacts(cfg pipeline.Config, report *pipeline.Report, logger logging.Logger) error {
	writer, err := facts.NewWriter(cfg.Output.Dir, facts.Options{Compress: cfg.Output.Compress}, logger)
	if err != nil {
		return err
	}
	if err := writer.WriteOutcomes(report.Outcomes); err != nil {
		return err
	}
	if err := writer.WriteSummary(report.Summary); err != nil {
		return err
	}
	if err := writer.WriteCompletePathways(report.Pairs); err != nil {
		return err
	}
	if err := writer.WriteUnmediatedPairs(report.Pairs); err != nil {
		return err
	}
	if err := writer.WritePathways(report.Pathways); err != nil {
		return err
	}
	return writer.WriteCrossReferences(report.Triples)
}

func printOutcomes(report *pipeline.Report) {
	if report == nil {
		return
	}
	for _, o := range report.Outcomes {
		marker := "PASS"
		switch o.Status {
		case results.StatusFailed:
			marker = "FAIL"
		case results.StatusWarning:
			marker = "WARN"
		}
		fmt.Printf("[%s] %s: %s\n", marker, o.Name, o.Message)
	}
	fmt.Println(report.Summary.String())
}
