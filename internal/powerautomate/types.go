package powerautomate

import "encoding/json"

// LastRunTimeUnknown is recorded for every flow. Run history is not queried.
const LastRunTimeUnknown = "Unknown"

// Environment is a tenant-scoped container of flows. Name is path-escaped in flow URLs.
type Environment struct {
	Name string
}

// FlowRecord is a single inventory entry.
type FlowRecord struct {
	FlowID      string `json:"flow_id"`
	DisplayName string `json:"display_name"`
	LastRunTime string `json:"last_run_time"`
}

// listResponse wraps collection responses of the API.
type listResponse[T any] struct {
	Value *[]T `json:"value"`
}

// jsonString records whether a string field was present in the payload.
// An explicit null counts as present and leaves Value empty.
type jsonString struct {
	Present bool
	Value   string
}

func (s *jsonString) UnmarshalJSON(data []byte) error {
	s.Present = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &s.Value)
}

type environmentResource struct {
	Name jsonString `json:"name"`
}

type flowResource struct {
	Name       jsonString      `json:"name"`
	Properties *flowProperties `json:"properties"`
}

type flowProperties struct {
	DisplayName jsonString `json:"displayName"`
}
