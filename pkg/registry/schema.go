// pkg/registry/schema.go
package registry

// ActivityRegistry describes the service tasks a process model can use.
type ActivityRegistry struct {
	Version    string     `json:"version"`
	Activities []Activity `json:"activities"`
}

// Activity is one job type served by a worker.
type Activity struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	TaskType     string                 `json:"taskType"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
}
