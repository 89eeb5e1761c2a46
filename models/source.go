package models

// SourceInfo is the public view of a configured source, safe to expose to
// clients (no headers or credentials).
type SourceInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	API  string `json:"api"`
}

// SourceStatus is SourceInfo plus the result of a reachability probe.
type SourceStatus struct {
	SourceInfo
	Reachable bool   `json:"reachable"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}
