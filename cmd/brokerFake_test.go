package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// fakeBroker is a scriptable brokerClient used to unit test the lifecycle
// helpers without any HTTP involved.
type fakeBroker struct {
	token     string
	authErr   error
	submitErr error
	submitRef string
	statuses  []string
	statusIdx int
	job       *jobRecord
	jobErr    error
	downloads map[string][]byte

	authCalls   int
	submitCalls int
	statusCalls int
	lastReq     jobRequest
}

func (f *fakeBroker) Authenticate(ctx context.Context) error {
	f.authCalls++
	if f.authErr != nil {
		return f.authErr
	}
	if f.token == "" {
		f.token = "fresh-token"
	}
	return nil
}

func (f *fakeBroker) Submit(ctx context.Context, req jobRequest) (string, error) {
	f.submitCalls++
	f.lastReq = req
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if f.submitRef != "" {
		return f.submitRef, nil
	}
	return "/api/v2/queue/1", nil
}

func (f *fakeBroker) JobStatus(ctx context.Context, id string) (string, error) {
	f.statusCalls++
	if len(f.statuses) == 0 {
		return jobStatusFinished, nil
	}
	i := f.statusIdx
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.statusIdx++
	return f.statuses[i], nil
}

func (f *fakeBroker) GetJob(ctx context.Context, id string) (*jobRecord, error) {
	if f.jobErr != nil {
		return nil, f.jobErr
	}
	if f.job != nil {
		return f.job, nil
	}
	return &jobRecord{ID: json.Number(id), Status: jobStatusFinished}, nil
}

func (f *fakeBroker) Download(ctx context.Context, url, dest string) error {
	b, ok := f.downloads[url]
	if !ok {
		return fmt.Errorf("no such download: %s", url)
	}
	return os.WriteFile(dest, b, 0o644)
}

func (f *fakeBroker) Token() string { return f.token }
