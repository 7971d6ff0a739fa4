// Package graphml parses GraphML pathway descriptions into the node and
// edge specs the analysis engine consumes.
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pathscope/pathscope/pkg/graph"
)

// Namespace is the GraphML XML namespace.
const Namespace = "http://graphml.graphdrawing.org/xmlns"

// Keys read from <data> elements.
const (
	keyType  = "type"
	keyLabel = "label"
)

// Document holds the parsed node and edge specs of one or more GraphML
// files.
type Document struct {
	Nodes []graph.NodeSpec
	Edges []graph.EdgeSpec
}

type xmlDocument struct {
	XMLName xml.Name   `xml:"graphml"`
	Graphs  []xmlGraph `xml:"graph"`
}

type xmlGraph struct {
	Nodes []xmlNode `xml:"node"`
	Edges []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func (n xmlNode) data(key string) string {
	for _, d := range n.Data {
		if d.Key == key {
			return strings.TrimSpace(d.Value)
		}
	}
	return ""
}

func (e xmlEdge) data(key string) string {
	for _, d := range e.Data {
		if d.Key == key {
			return strings.TrimSpace(d.Value)
		}
	}
	return ""
}

// Parse reads one GraphML document. Node categories come from
// <data key="type"> (lowercased), edge interactions from <data key="label">.
func Parse(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode graphml: %w", err)
	}

	doc := &Document{}
	for _, g := range raw.Graphs {
		for _, n := range g.Nodes {
			if n.ID == "" {
				continue
			}
			doc.Nodes = append(doc.Nodes, graph.NodeSpec{
				ID:       n.ID,
				Category: strings.ToLower(n.data(keyType)),
			})
		}
		for _, e := range g.Edges {
			doc.Edges = append(doc.Edges, graph.EdgeSpec{
				From:        e.Source,
				To:          e.Target,
				Interaction: e.data(keyLabel),
			})
		}
	}
	return doc, nil
}

// LoadFile parses a single GraphML file.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graphml file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// LoadDir consolidates every *.graphml file in dir (sorted by filename) into
// one document. Duplicate node IDs keep their first occurrence; edges are
// concatenated across files.
func LoadDir(dir string) (*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read graphml dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".graphml") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no .graphml files in %s", dir)
	}

	merged := &Document{}
	seen := make(map[string]bool)
	for _, name := range names {
		doc, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		for _, node := range doc.Nodes {
			if seen[node.ID] {
				continue
			}
			seen[node.ID] = true
			merged.Nodes = append(merged.Nodes, node)
		}
		merged.Edges = append(merged.Edges, doc.Edges...)
	}
	return merged, nil
}
