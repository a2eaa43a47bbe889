package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// httpBroker is the concrete brokerClient speaking the NMPI queue's HTTP
// JSON API. All calls are blocking and carry the bearer token once one is
// held.
type httpBroker struct {
	baseURL  string
	username string
	token    string
	httpc    *http.Client
}

// newHTTPBroker constructs the broker client. token may be empty, in which
// case Authenticate prompts for a password and obtains a fresh one.
func newHTTPBroker(baseURL, username, token string) brokerClient {
	return &httpBroker{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		token:    token,
		httpc:    &http.Client{},
	}
}

func (b *httpBroker) Token() string { return b.token }

// Authenticate obtains an access token when none is cached. The password is
// read interactively; the broker answers with a bearer token reused for the
// rest of the session.
func (b *httpBroker) Authenticate(ctx context.Context) error {
	if b.token != "" {
		return nil
	}
	password := promptSecretFunc("Password: ")
	body, err := json.Marshal(map[string]string{
		"username": b.username,
		"password": password,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/v2/token/auth", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := b.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errAuthenticationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %s", errAuthenticationFailed, resp.Status)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: decode response: %v", errAuthenticationFailed, err)
	}
	if out.Token == "" {
		return fmt.Errorf("%w: empty token in response", errAuthenticationFailed)
	}
	b.token = out.Token
	return nil
}

// Submit enqueues the job and returns the broker's job reference verbatim
// (callers normalize resource paths to bare ids).
func (b *httpBroker) Submit(ctx context.Context, jr jobRequest) (string, error) {
	body, err := json.Marshal(jr)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/v2/queue", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	b.authorize(req)
	resp, err := b.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("submit rejected: status %s", resp.Status)
	}
	var out struct {
		ResourceURI string      `json:"resource_uri"`
		ID          json.Number `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("submit: decode response: %w", err)
	}
	if out.ResourceURI != "" {
		return out.ResourceURI, nil
	}
	return out.ID.String(), nil
}

func (b *httpBroker) JobStatus(ctx context.Context, id string) (string, error) {
	job, err := b.GetJob(ctx, id)
	if err != nil {
		return "", err
	}
	return job.Status, nil
}

func (b *httpBroker) GetJob(ctx context.Context, id string) (*jobRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/v2/queue/"+id, nil)
	if err != nil {
		return nil, err
	}
	b.authorize(req)
	resp, err := b.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("job %s: status %s", id, resp.Status)
	}
	job := &jobRecord{}
	if err := json.NewDecoder(resp.Body).Decode(job); err != nil {
		return nil, fmt.Errorf("job %s: decode response: %w", id, err)
	}
	return job, nil
}

// Download streams a job output URL to the local file dest. Relative URLs
// are resolved against the broker base.
func (b *httpBroker) Download(ctx context.Context, url, dest string) error {
	if strings.HasPrefix(url, "/") {
		url = b.baseURL + url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	b.authorize(req)
	resp, err := b.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %s", url, resp.Status)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (b *httpBroker) authorize(req *http.Request) {
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
}
