package source

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/letolabs/treemachine/pkg/cache"
	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
)

// Defaults for Neo4jOptions.
const (
	DefaultRelType      = "STREECHILDOF"
	DefaultRankProperty = "rank"
)

// candidateQuery selects the relationships entering one parent node, best
// rank first. Relationship types and property names cannot be parameters in
// Cypher, so both are validated and formatted in.
const candidateQuery = `MATCH (c)-[r:%s]->(p)
WHERE id(p) = $parent
RETURN id(r) AS edge,
       id(c) AS child, c.name AS child_name, c.mrca AS child_mrca,
       id(p) AS parent, p.name AS parent_name, p.mrca AS parent_mrca
ORDER BY r.%s ASC, id(r) ASC`

// GraphDriver executes Cypher queries.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

// Neo4jConfig holds connection settings.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

// Neo4jDriver is the GraphDriver backed by the official Neo4j driver.
type Neo4jDriver struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jDriver connects and verifies connectivity, retrying transient
// failures.
func NewNeo4jDriver(ctx context.Context, cfg Neo4jConfig) (*Neo4jDriver, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "neo4j driver for %s", cfg.URI)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := driver.VerifyConnectivity(ctx); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect %s", cfg.URI)
	}
	return &Neo4jDriver{driver: driver, database: cfg.Database}, nil
}

// ExecuteQuery implements GraphDriver.
func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if d.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("execute query: %w", err)
	}
	return *result, nil
}

// Close implements GraphDriver.
func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

// Neo4jOptions selects which relationships are candidates and how they rank.
type Neo4jOptions struct {
	// Parent is the graph id of the node whose incoming edges are resolved.
	Parent int64
	// RelType is the relationship type of candidate edges.
	RelType string
	// RankProperty is the relationship property ordering candidates; lower
	// values rank higher.
	RankProperty string
	Logger       *log.Logger
}

// Neo4jSource loads candidates from a Neo4j graph. Node descendant sets are
// read from the "mrca" property.
type Neo4jSource struct {
	driver GraphDriver
	opts   Neo4jOptions
	query  string
}

// NewNeo4jSource validates opts and prepares the candidate query.
func NewNeo4jSource(driver GraphDriver, opts Neo4jOptions) (*Neo4jSource, error) {
	if opts.RelType == "" {
		opts.RelType = DefaultRelType
	}
	if opts.RankProperty == "" {
		opts.RankProperty = DefaultRankProperty
	}
	if err := errors.ValidateIdentifier(opts.RelType); err != nil {
		return nil, fmt.Errorf("relationship type: %w", err)
	}
	if err := errors.ValidateIdentifier(opts.RankProperty); err != nil {
		return nil, fmt.Errorf("rank property: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Neo4jSource{
		driver: driver,
		opts:   opts,
		query:  fmt.Sprintf(candidateQuery, opts.RelType, opts.RankProperty),
	}, nil
}

// Name implements Source.
func (s *Neo4jSource) Name() string { return "neo4j" }

// Load implements Source. A child node without an "mrca" property fails
// with MISSING_DESCENDANTS.
func (s *Neo4jSource) Load(ctx context.Context) (*lineage.Snapshot, error) {
	return observeLoad(ctx, s.Name(), func() (*lineage.Snapshot, error) {
		return s.load(ctx)
	})
}

func (s *Neo4jSource) load(ctx context.Context) (*lineage.Snapshot, error) {
	s.opts.Logger.Debug("querying candidates", "parent", s.opts.Parent, "rel", s.opts.RelType, "rank", s.opts.RankProperty)
	res, err := s.driver.ExecuteQuery(ctx, s.query, map[string]any{"parent": s.opts.Parent})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query candidates of node %d", s.opts.Parent)
	}

	snap := lineage.NewSnapshot()
	for i, rec := range res.Records {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if row.childMRCA == nil {
			return nil, errors.New(errors.ErrCodeMissingDescendants,
				"node %d (%q) has no mrca property", row.child, row.childName)
		}
		if err := addOnce(snap, lineage.Node{ID: row.parent, Name: row.parentName, Descendants: row.parentMRCA}); err != nil {
			return nil, err
		}
		if err := addOnce(snap, lineage.Node{ID: row.child, Name: row.childName, Descendants: row.childMRCA}); err != nil {
			return nil, err
		}
		if err := snap.AddEdge(lineage.Edge{ID: row.edge, Child: row.child, Parent: row.parent}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d", row.edge)
		}
	}
	s.opts.Logger.Debug("loaded candidates", "edges", snap.EdgeCount(), "nodes", snap.NodeCount())
	return snap, nil
}

// Close implements Source.
func (s *Neo4jSource) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func addOnce(snap *lineage.Snapshot, n lineage.Node) error {
	if _, ok := snap.Node(n.ID); ok {
		return nil
	}
	return snap.AddNode(n)
}

type row struct {
	edge, child, parent   int64
	childName, parentName string
	childMRCA, parentMRCA lineage.Set
}

func parseRow(rec *neo4j.Record) (row, error) {
	var r row
	var err error
	if r.edge, err = intValue(rec, "edge"); err != nil {
		return r, err
	}
	if r.child, err = intValue(rec, "child"); err != nil {
		return r, err
	}
	if r.parent, err = intValue(rec, "parent"); err != nil {
		return r, err
	}
	r.childName = stringValue(rec, "child_name")
	r.parentName = stringValue(rec, "parent_name")
	if r.childMRCA, err = setValue(rec, "child_mrca"); err != nil {
		return r, err
	}
	if r.parentMRCA, err = setValue(rec, "parent_mrca"); err != nil {
		return r, err
	}
	return r, nil
}

func intValue(rec *neo4j.Record, key string) (int64, error) {
	v, ok := rec.Get(key)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing column %s", key)
	}
	id, ok := v.(int64)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "column %s: want integer, got %T", key, v)
	}
	return id, nil
}

func stringValue(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

// setValue reads a list of integers. A null or absent value yields a nil
// set, meaning "not computed".
func setValue(rec *neo4j.Record, key string) (lineage.Set, error) {
	v, _ := rec.Get(key)
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []int64:
		return lineage.NewSet(list...), nil
	case []any:
		ids := make([]int64, len(list))
		for i, x := range list {
			id, ok := x.(int64)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "column %s[%d]: want integer, got %T", key, i, x)
			}
			ids[i] = id
		}
		return lineage.NewSet(ids...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "column %s: want list, got %T", key, v)
}

var (
	_ Source      = (*Neo4jSource)(nil)
	_ GraphDriver = (*Neo4jDriver)(nil)
)
