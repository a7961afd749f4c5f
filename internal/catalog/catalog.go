package catalog

// ServiceEntry is one addressable external capability. Entries are
// immutable once fetched; identity is (category, name).
type ServiceEntry struct {
	Category     string            `json:"category"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	ServiceID    string            `json:"service_id"`
	Initiators   []string          `json:"initiators"`
	SampleInput  string            `json:"sample_input,omitempty"`
	OutputFields map[string]string `json:"output_fields,omitempty"`
	Paginated    bool              `json:"paginated"`
}

// CategoryGroup holds the entries of one category in fetch order.
type CategoryGroup struct {
	Category string         `json:"category"`
	Services []ServiceEntry `json:"services"`
}

// Catalog is a snapshot of the source of record, categories sorted
// lexicographically.
type Catalog struct {
	Groups []CategoryGroup
}

// CategoryListing is the discovery view handed to the transport boundary:
// a category with the sorted union of its entries' initiators.
type CategoryListing struct {
	Category   string         `json:"category"`
	Services   []ServiceEntry `json:"services"`
	Initiators []string       `json:"initiators"`
}

func (c *Catalog) group(category string) *CategoryGroup {
	for i := range c.Groups {
		if c.Groups[i].Category == category {
			return &c.Groups[i]
		}
	}
	return nil
}
