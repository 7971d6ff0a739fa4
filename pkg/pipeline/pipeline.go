// Package pipeline sequences the analysis stages: graph construction, role
// classification, reachability, path enumeration, mediation, and
// cross-referencing, recording an outcome for each.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pathscope/pathscope/pkg/classify"
	"github.com/pathscope/pathscope/pkg/crossref"
	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/logging"
	"github.com/pathscope/pathscope/pkg/mediation"
	"github.com/pathscope/pathscope/pkg/metrics"
	"github.com/pathscope/pathscope/pkg/paths"
	"github.com/pathscope/pathscope/pkg/reach"
	"github.com/pathscope/pathscope/pkg/results"
	"github.com/pathscope/pathscope/pkg/validation"
)

// Outcome names recorded during a run.
const (
	CheckDataLoading        = "data_loading"
	CheckGraphLoaded        = "graph_loaded"
	CheckDanglingEdges      = "dangling_edges"
	CheckNodeClassification = "node_classification"
	CheckReachability       = "reachability"
	CheckPathwayIntegrity   = "pathway_integrity"
	CheckPathEnumeration    = "path_enumeration"
	CheckMediationCoverage  = "mediation_coverage"
	CheckCrossReferences    = "cross_reference_analysis"
)

// Loader supplies the input graph. A loader error is the only stage-halting
// failure: it is recorded against the data-loading check and no analysis
// stage runs.
type Loader func() ([]graph.NodeSpec, []graph.EdgeSpec, error)

// SpecLoader wraps already-parsed specs into a Loader.
func SpecLoader(nodes []graph.NodeSpec, edges []graph.EdgeSpec) Loader {
	return func() ([]graph.NodeSpec, []graph.EdgeSpec, error) {
		return nodes, edges, nil
	}
}

// Report gathers everything one analysis run produced.
type Report struct {
	RunID        string
	Graph        *graph.Graph
	Assignment   *classify.Assignment
	Reachability reach.Map
	Pathways     []paths.Pathway
	Pairs        []mediation.Pair
	Triples      []crossref.Triple
	Outcomes     []results.Outcome
	Summary      results.Summary
}

// Analyzer runs the full pipeline over one input graph per call.
type Analyzer struct {
	cfg      Config
	logger   logging.Logger
	registry *metrics.Registry
}

// New creates an analyzer. A nil logger discards output; a nil registry
// falls back to the default metrics registry.
func New(cfg Config, logger logging.Logger, registry *metrics.Registry) *Analyzer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.DefaultRegistry()
	}
	return &Analyzer{cfg: cfg, logger: logger, registry: registry}
}

// Run executes every stage in dependency order. Stage-level validation
// failures (zero origins, no pathways) are recorded as failed outcomes, not
// returned as errors; only a loader failure yields a non-nil error, and the
// returned report still carries the recorded outcomes.
func (a *Analyzer) Run(load Loader) (*Report, error) {
	runID := uuid.NewString()
	logger := a.logger.With(logging.RunID(runID))
	recorder := results.NewRecorder()
	report := &Report{RunID: runID}

	err := a.loadStage(load, report, recorder, logger)
	if err == nil {
		a.classifyStage(report, recorder, logger)
		a.reachabilityStage(report, recorder, logger)
		a.pathStage(report, recorder, logger)
		a.mediationStage(report, recorder, logger)
		a.crossrefStage(report, recorder, logger)
	}

	report.Outcomes = recorder.Outcomes()
	report.Summary = recorder.Summarize()
	for _, o := range report.Outcomes {
		a.registry.RecordOutcome(string(o.Status))
	}
	logger.Info("analysis run finished",
		logging.String("summary", report.Summary.String()))
	return report, err
}

func (a *Analyzer) loadStage(load Loader, report *Report, recorder *results.Recorder, logger logging.Logger) error {
	start := time.Now()

	nodes, edges, err := load()
	if err == nil {
		if verr := validation.ValidateNodeSpecs(nodes); verr != nil {
			err = verr
		} else if verr := validation.ValidateEdgeSpecs(edges); verr != nil {
			err = verr
		}
	}
	if err != nil {
		recorder.Failf(CheckDataLoading, "Error loading graph: %v", err)
		a.registry.RecordStage("load", "error", time.Since(start))
		logger.Error("graph loading failed", logging.Stage("load"), logging.Error(err))
		return err
	}

	report.Graph = graph.Build(nodes, edges, logger)
	dropped := len(report.Graph.DroppedEdges())
	recorder.Passf(CheckGraphLoaded, "Graph loaded successfully with %d nodes and %d edges",
		report.Graph.NodeCount(), report.Graph.EdgeCount())
	if dropped > 0 {
		recorder.Warnf(CheckDanglingEdges, "Dropped %d edges referencing unknown nodes", dropped)
	}

	a.registry.RecordGraph(report.Graph.NodeCount(), report.Graph.EdgeCount(), dropped)
	a.registry.RecordStage("load", "success", time.Since(start))
	logger.Info("graph loaded",
		logging.Stage("load"),
		logging.Int("nodes", report.Graph.NodeCount()),
		logging.Int("edges", report.Graph.EdgeCount()),
		logging.Int("dropped_edges", dropped))
	return nil
}

func (a *Analyzer) classifyStage(report *Report, recorder *results.Recorder, logger logging.Logger) {
	start := time.Now()

	policy := a.cfg.classifyPolicy()
	report.Assignment = policy.Classify(report.Graph)
	// Classification itself cannot fail; Apply only errors on stale IDs,
	// which a fresh assignment over the same graph cannot contain.
	_ = report.Assignment.Apply(report.Graph)

	counts := report.Assignment.Counts
	origins := counts[graph.RoleOrigin]
	termini := counts[graph.RoleTerminus]
	mediators := counts[graph.RoleMediator]

	message := "Found " + countsMessage(origins, termini, mediators)
	if origins > 0 && termini > 0 && mediators > 0 {
		recorder.Passf(CheckNodeClassification, "%s", message)
	} else {
		recorder.Failf(CheckNodeClassification, "%s", message)
	}

	roleCounts := make(map[string]int, len(counts))
	for role, count := range counts {
		roleCounts[role.String()] = count
	}
	a.registry.RecordRoleCounts(roleCounts)
	a.registry.RecordStage("classify", "success", time.Since(start))
	logger.Info("nodes classified",
		logging.Stage("classify"),
		logging.String("policy", policy.Name()),
		logging.Int("origins", origins),
		logging.Int("termini", termini),
		logging.Int("mediators", mediators),
		logging.Int("ordinary", counts[graph.RoleOrdinary]))
}

func (a *Analyzer) reachabilityStage(report *Report, recorder *results.Recorder, logger logging.Logger) {
	start := time.Now()

	result, err := reach.Compute(report.Graph, a.cfg.reachOptions())
	if err != nil {
		// Config validation rejects unknown algorithms before a run starts,
		// so this is unreachable with a validated config.
		recorder.Failf(CheckReachability, "Reachability computation failed: %v", err)
		a.registry.RecordStage("reachability", "error", time.Since(start))
		logger.Error("reachability failed", logging.Stage("reachability"), logging.Error(err))
		return
	}

	report.Reachability = result.Map
	recorder.Passf(CheckReachability, "Computed reachability for %d nodes using %s",
		len(result.Map), result.Algorithm)

	a.registry.RecordClosure(result.Passes)
	a.registry.RecordStage("reachability", "success", time.Since(start))
	logger.Info("reachability computed",
		logging.Stage("reachability"),
		logging.String("algorithm", string(result.Algorithm)),
		logging.Int("passes", result.Passes))
}

func (a *Analyzer) pathStage(report *Report, recorder *results.Recorder, logger logging.Logger) {
	start := time.Now()

	report.Pathways = paths.Enumerate(report.Graph, paths.Options{
		MaxLength: a.cfg.Paths.MaxLength,
		MaxPaths:  a.cfg.Paths.MaxPaths,
		Workers:   a.cfg.Paths.Workers,
	})
	recorder.Passf(CheckPathEnumeration, "Enumerated %d simple pathways", len(report.Pathways))

	a.registry.RecordPathways(len(report.Pathways))
	a.registry.RecordStage("paths", "success", time.Since(start))
	logger.Info("pathways enumerated",
		logging.Stage("paths"),
		logging.Count(len(report.Pathways)))
}

func (a *Analyzer) mediationStage(report *Report, recorder *results.Recorder, logger logging.Logger) {
	start := time.Now()

	strictness := mediation.Strictness(a.cfg.Mediation.Strictness)
	pairs, err := mediation.Analyze(report.Graph, report.Reachability, mediation.Options{
		Strictness: strictness,
		Pathways:   report.Pathways,
	})
	if err != nil {
		recorder.Failf(CheckMediationCoverage, "Mediation analysis failed: %v", err)
		a.registry.RecordStage("mediation", "error", time.Since(start))
		logger.Error("mediation failed", logging.Stage("mediation"), logging.Error(err))
		return
	}
	report.Pairs = pairs

	connected := 0
	unmediated := 0
	for _, pair := range pairs {
		a.registry.RecordPair(pair.Connected, pair.Mediated)
		if pair.Connected {
			connected++
			if !pair.Mediated {
				unmediated++
			}
		}
	}

	if connected > 0 {
		recorder.Passf(CheckPathwayIntegrity, "Found %d complete origin-to-terminus pathways", connected)
	} else {
		recorder.Failf(CheckPathwayIntegrity, "No complete pathways found")
	}
	if unmediated == 0 && connected > 0 {
		recorder.Passf(CheckMediationCoverage, "All %d connected pathways are mediated", connected)
	} else {
		recorder.Failf(CheckMediationCoverage, "Found %d unmediated pathways", unmediated)
	}

	a.registry.RecordStage("mediation", "success", time.Since(start))
	logger.Info("mediation analyzed",
		logging.Stage("mediation"),
		logging.String("strictness", string(strictness)),
		logging.Int("connected", connected),
		logging.Int("unmediated", unmediated))
}

func (a *Analyzer) crossrefStage(report *Report, recorder *results.Recorder, logger logging.Logger) {
	start := time.Now()

	report.Triples = crossref.Derive(report.Graph, report.Reachability)
	if len(report.Triples) > 0 {
		recorder.Passf(CheckCrossReferences, "Found %d origin-mediator-terminus relationships", len(report.Triples))
	} else {
		recorder.Failf(CheckCrossReferences, "No origin-mediator-terminus relationships found")
	}

	a.registry.RecordTriples(len(report.Triples))
	a.registry.RecordStage("crossref", "success", time.Since(start))
	logger.Info("cross-references derived",
		logging.Stage("crossref"),
		logging.Count(len(report.Triples)))
}

func countsMessage(origins, termini, mediators int) string {
	return fmt.Sprintf("%d origins, %d termini, %d mediators", origins, termini, mediators)
}
