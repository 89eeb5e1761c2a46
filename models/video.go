package models

// VideoRecord represents a normalized search result from a VOD CMS backend.
// Field names on the wire follow the CMS convention used by the frontends
// that consume this API.
type VideoRecord struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Poster     string   `json:"poster"`
	Episodes   []string `json:"episodes"`
	SourceKey  string   `json:"source"`
	SourceName string   `json:"source_name"`
	Class      string   `json:"class"`
	Year       string   `json:"year"`
	Desc       string   `json:"desc"`
	TypeName   string   `json:"type_name"`
}

// AggregatedPage is one page of merged, deduplicated results.
type AggregatedPage struct {
	Items []VideoRecord `json:"items"`
	Start int           `json:"start"`
	Limit int           `json:"limit"`
}

// APIResponse is the envelope shared by all list endpoints.
// Code is 200 for every handled outcome, including "no sources configured";
// 500 is reserved for unexpected internal failures.
type APIResponse struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	List    []VideoRecord `json:"list"`
}
