// Package pipeline runs the load → resolve → build → render pipeline shared
// by the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read the ranked candidates from a [source.Source]
//  2. Resolve: run the rank resolver, or reuse a cached result for the same
//     input
//  3. Build: attach the accepted edges into a [tree.Node] hierarchy
//  4. Render: produce the requested output formats
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, source.NewFileSource("in.json"), pipeline.Options{
//	    Formats:       []string{pipeline.FormatNewick, pipeline.FormatSVG},
//	    BranchLengths: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	newick := result.Artifacts[pipeline.FormatNewick]
//
// Results are cached by the hash of the snapshot's canonical encoding, so
// the same candidates loaded from a file or from Neo4j share an entry.
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/letolabs/treemachine/pkg/cache"
	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/resolve"
	"github.com/letolabs/treemachine/pkg/tree"
)

// Format constants for output formats.
const (
	FormatNewick = "newick"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatNewick: true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatNewick

// Options configures one pipeline run.
type Options struct {
	Formats       []string `json:"formats,omitempty"`
	BranchLengths bool     `json:"branch_lengths,omitempty"`
	Detailed      bool     `json:"detailed,omitempty"` // association details in DOT/SVG labels
	Refresh       bool     `json:"refresh,omitempty"`  // ignore a cached resolution and overwrite it

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and API responses.
	RunID string

	// Snapshot is the loaded candidate data.
	Snapshot *lineage.Snapshot

	// InputHash is the content hash of the snapshot.
	InputHash string

	// Report holds the accepted, rejected and removed edges.
	Report *resolve.Report

	// Tree is the tree built from the accepted edges.
	Tree *tree.Node

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ResolveHit bool // resolution came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, FormatNames())
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks formats and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// ResolveKeyOpts returns cache key options for a resolution by method.
func ResolveKeyOpts(method resolve.Method) cache.ResolveKeyOpts {
	return cache.ResolveKeyOpts{Method: method.Description()}
}
