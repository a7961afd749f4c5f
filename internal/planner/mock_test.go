package planner

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cyberglobes/querybuilder/internal/catalog"
)

type capturedTurn struct {
	System string
	User   string
}

type MockLLM struct {
	ResponseQueue []string
	Err           error
	Turns         []capturedTurn
}

func (m *MockLLM) Generate(ctx context.Context, system, user string) (string, error) {
	m.Turns = append(m.Turns, capturedTurn{System: system, User: user})
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) == 0 {
		return "", nil
	}
	resp := m.ResponseQueue[0]
	m.ResponseQueue = m.ResponseQueue[1:]
	return resp, nil
}

type MockCatalogDriver struct{}

func (m *MockCatalogDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	rec := &neo4j.Record{
		Keys: []string{"category", "name", "type", "service_id", "initiator", "initiators", "sample_input", "output_fields", "paginated"},
		Values: []interface{}{
			"twitter_posts", "Twitter Scraper", "scraper", "svc-1", "keyword", nil, "", "", true,
		},
	}
	return neo4j.EagerResult{Records: []*neo4j.Record{rec}}, nil
}

func (m *MockCatalogDriver) Close(ctx context.Context) error {
	return nil
}

func testCatalog() *catalog.Store {
	return catalog.NewStore(&MockCatalogDriver{}, 5*time.Minute, 100, "initiator")
}
