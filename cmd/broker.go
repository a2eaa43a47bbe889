package cmd

import (
	"context"
	"encoding/json"
)

// jobRequest describes one submission to the broker. Immutable once
// submitted.
type jobRequest struct {
	Source         string         `json:"code"`
	Platform       string         `json:"hardware_platform"`
	CollabID       string         `json:"collab_id"`
	HardwareConfig map[string]int `json:"hardware_config,omitempty"`
}

// outputItem is one output data descriptor of a finished job.
type outputItem struct {
	URL string `json:"url"`
}

// jobRecord is the broker's view of a job as returned by GetJob. The id is
// numeric on some broker versions and a string on others.
type jobRecord struct {
	ID         json.Number  `json:"id"`
	Status     string       `json:"status"`
	OutputData []outputItem `json:"output_data"`
}

// Terminal job states. Everything else is non-terminal and keeps the poll
// loop running.
const (
	jobStatusFinished = "finished"
	jobStatusError    = "error"
)

// brokerClient is the capability surface of the remote NMPI broker. There is
// a single concrete implementation (httpBroker) selected at build time;
// tests substitute fakes through newBrokerFunc.
type brokerClient interface {
	// Authenticate ensures a usable access token, prompting for a password
	// when none is cached.
	Authenticate(ctx context.Context) error
	// Submit enqueues a job and returns the broker's job reference, which
	// may be a bare id or a resource path ending in the id.
	Submit(ctx context.Context, req jobRequest) (string, error)
	// JobStatus returns the current status string of the job.
	JobStatus(ctx context.Context, id string) (string, error)
	// GetJob returns the full job record including output descriptors.
	GetJob(ctx context.Context, id string) (*jobRecord, error)
	// Download retrieves a job output URL into the local file dest.
	Download(ctx context.Context, url, dest string) error
	// Token exposes the current access token for session persistence.
	Token() string
}
