package catalog

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	Records []*neo4j.Record
	Err     error
	Calls   int
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Calls++
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}

	skip := params["skip"].(int)
	limit := params["limit"].(int)

	if skip >= len(m.Records) {
		return neo4j.EagerResult{Records: []*neo4j.Record{}}, nil
	}
	end := skip + limit
	if end > len(m.Records) {
		end = len(m.Records)
	}
	return neo4j.EagerResult{Records: m.Records[skip:end]}, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func serviceRecord(category, name, serviceID, initiator string) *neo4j.Record {
	return &neo4j.Record{
		Keys: []string{"category", "name", "type", "service_id", "initiator", "initiators", "sample_input", "output_fields", "paginated"},
		Values: []interface{}{
			category, name, "scraper", serviceID, initiator, nil, "", `{"id":"post_id"}`, true,
		},
	}
}

func serviceRecordWithList(category, name, serviceID string, initiators []interface{}) *neo4j.Record {
	return &neo4j.Record{
		Keys: []string{"category", "name", "type", "service_id", "initiator", "initiators", "sample_input", "output_fields", "paginated"},
		Values: []interface{}{
			category, name, "scraper", serviceID, nil, initiators, "", "", false,
		},
	}
}
