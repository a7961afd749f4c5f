package catalog

import (
	"encoding/json"
)

// The source of record comes in two shapes: one record per initiator
// (singular `initiator` field) or one record per service with an
// `initiators` list. Each shape gets its own adapter converting the native
// record into the canonical ServiceEntry; the fetch loop calls whichever
// adapter matches the configured backend rather than sniffing fields.
type recordAdapter func(rec map[string]interface{}) ServiceEntry

func adapterForShape(shape string) recordAdapter {
	if shape == "initiators" {
		return entryFromInitiatorList
	}
	return entryFromSingleInitiator
}

// entryFromSingleInitiator handles backends that emit one record per
// initiator. Merging records of the same (category, name) into a single
// entry happens at grouping time.
func entryFromSingleInitiator(rec map[string]interface{}) ServiceEntry {
	e := entryCommon(rec)
	if init, ok := rec["initiator"].(string); ok && init != "" {
		e.Initiators = []string{init}
	}
	return e
}

// entryFromInitiatorList handles backends that emit one record per service
// with the full initiator list attached.
func entryFromInitiatorList(rec map[string]interface{}) ServiceEntry {
	e := entryCommon(rec)
	if raw, ok := rec["initiators"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				e.Initiators = append(e.Initiators, s)
			}
		}
	}
	return e
}

// entryCommon maps the fields shared by both record shapes and strips
// everything that only exists for the fetch mechanism.
func entryCommon(rec map[string]interface{}) ServiceEntry {
	e := ServiceEntry{}
	if v, ok := rec["category"].(string); ok {
		e.Category = v
	}
	if v, ok := rec["name"].(string); ok {
		e.Name = v
	}
	if v, ok := rec["type"].(string); ok {
		e.Type = v
	}
	if v, ok := rec["service_id"].(string); ok {
		e.ServiceID = v
	}
	if v, ok := rec["sample_input"].(string); ok {
		e.SampleInput = v
	}
	if v, ok := rec["paginated"].(bool); ok {
		e.Paginated = v
	}
	if v, ok := rec["output_fields"].(string); ok && v != "" {
		var fields map[string]string
		if err := json.Unmarshal([]byte(v), &fields); err == nil {
			e.OutputFields = fields
		}
	}
	return e
}
