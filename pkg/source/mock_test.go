package source

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]any
	MockResult    neo4j.EagerResult
	Err           error
	Closed        bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

var columns = []string{"edge", "child", "child_name", "child_mrca", "parent", "parent_name", "parent_mrca"}

func record(edge, child int64, childName string, childMRCA any, parent int64) *neo4j.Record {
	return &neo4j.Record{
		Keys:   columns,
		Values: []any{edge, child, childName, childMRCA, parent, "life", []any{int64(1), int64(2), int64(3)}},
	}
}
