// Package facts writes the engine's result records as tab-delimited fact
// files, the on-disk layout consumed by downstream rule evaluation.
package facts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/pathscope/pathscope/pkg/crossref"
	"github.com/pathscope/pathscope/pkg/logging"
	"github.com/pathscope/pathscope/pkg/mediation"
	"github.com/pathscope/pathscope/pkg/paths"
	"github.com/pathscope/pathscope/pkg/results"
)

// Fact file names.
const (
	FileTestResults     = "test_results.facts"
	FileTestSummary     = "test_summary.facts"
	FileCompletePaths   = "complete_pathways.facts"
	FileUnverifiedPaths = "unverified_pathways.facts"
	FilePathways        = "pathways.facts"
	FileCrossReferences = "cross_references.facts"

	// CompressedSuffix is appended to file names when compression is on.
	CompressedSuffix = ".sz"

	// UnmediatedReason tags unverified pairs in the fact output.
	UnmediatedReason = "no_mediator"
)

// Options configures the writer.
type Options struct {
	// Compress writes snappy-compressed files with a .sz suffix.
	Compress bool
}

// Writer serializes result records into a directory of fact files.
type Writer struct {
	dir      string
	compress bool
	logger   logging.Logger
}

// NewWriter creates a writer targeting dir, creating it if needed.
func NewWriter(dir string, opts Options, logger logging.Logger) (*Writer, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create facts dir: %w", err)
	}
	return &Writer{dir: dir, compress: opts.Compress, logger: logger}, nil
}

// WriteOutcomes writes every recorded outcome, one per line.
func (w *Writer) WriteOutcomes(outcomes []results.Outcome) error {
	lines := make([]string, len(outcomes))
	for i, o := range outcomes {
		lines[i] = o.Line()
	}
	return w.writeFile(FileTestResults, lines)
}

// WriteSummary writes the header and counts of the run summary.
func (w *Writer) WriteSummary(s results.Summary) error {
	lines := []string{
		"total\tpassed",
		strconv.Itoa(s.Total) + "\t" + strconv.Itoa(s.Passed),
	}
	return w.writeFile(FileTestSummary, lines)
}

// WriteCompletePathways writes one (origin, terminus) line per connected
// pair.
func (w *Writer) WriteCompletePathways(pairs []mediation.Pair) error {
	var lines []string
	for _, p := range pairs {
		if p.Connected {
			lines = append(lines, p.Origin+"\t"+p.Terminus)
		}
	}
	return w.writeFile(FileCompletePaths, lines)
}

// WriteUnmediatedPairs writes connected pairs that lack a mediator, tagged
// with the reason.
func (w *Writer) WriteUnmediatedPairs(pairs []mediation.Pair) error {
	var lines []string
	for _, p := range pairs {
		if p.Connected && !p.Mediated {
			lines = append(lines, strings.Join([]string{p.Origin, p.Terminus, UnmediatedReason}, "\t"))
		}
	}
	return w.writeFile(FileUnverifiedPaths, lines)
}

// WritePathways writes every enumerated pathway as its node sequence and
// length.
func (w *Writer) WritePathways(pathways []paths.Pathway) error {
	lines := make([]string, len(pathways))
	for i, p := range pathways {
		lines[i] = strings.Join(p.Nodes, "->") + "\t" + strconv.Itoa(p.Length())
	}
	return w.writeFile(FilePathways, lines)
}

// WriteCrossReferences writes one (origin, mediator, terminus) line per
// triple.
func (w *Writer) WriteCrossReferences(triples []crossref.Triple) error {
	lines := make([]string, len(triples))
	for i, t := range triples {
		lines[i] = strings.Join([]string{t.Origin, t.Mediator, t.Terminus}, "\t")
	}
	return w.writeFile(FileCrossReferences, lines)
}

// writeFile writes lines to the named fact file, optionally compressed.
func (w *Writer) writeFile(name string, lines []string) error {
	path := filepath.Join(w.dir, name)
	if w.compress {
		path += CompressedSuffix
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	var out io.Writer = f
	var sw *snappy.Writer
	if w.compress {
		sw = snappy.NewBufferedWriter(f)
		out = sw
	}

	bw := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			return fmt.Errorf("close compressed %s: %w", name, err)
		}
	}

	w.logger.Debug("wrote fact file",
		logging.Component("facts"),
		logging.Path(path),
		logging.Count(len(lines)))
	return nil
}
