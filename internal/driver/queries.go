package driver

const (
	// ScanServicesQuery pages through every service descriptor in fetch
	// order. Some deployments store one node per initiator (singular
	// `initiator` field), others one node per service with an `initiators`
	// list; both columns are returned and the catalog normalizes them.
	ScanServicesQuery = `
		MATCH (s:Service)
		RETURN s.category AS category,
			s.name AS name,
			s.type AS type,
			s.service_id AS service_id,
			s.initiator AS initiator,
			s.initiators AS initiators,
			s.sample_input AS sample_input,
			s.output_fields AS output_fields,
			s.paginated AS paginated
		ORDER BY s.category ASC, s.service_id ASC
		SKIP $skip
		LIMIT $limit
	`
)
