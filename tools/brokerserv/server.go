// Package brokerserv implements a mock NMPI broker for tests and manual
// runs. It accepts any username/password, enqueues submitted jobs, advances
// each job through a scripted status sequence (one step per status query),
// and serves a synthesized result archive named after the submission's
// temporary directory.
package brokerserv

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/go-chi/chi/v5"
)

// tmpDirPattern matches the archive namespace embedded in a submitted
// companion script.
var tmpDirPattern = regexp.MustCompile(`cypress_[A-Za-z0-9]{8}`)

// Server holds the mock broker's state. Stdout/Stderr seed the sidecar
// files of every job's result archive; Extra adds further files under the
// job's namespace. The archive always carries one entry outside the
// namespace so clients can prove they ignore it.
type Server struct {
	mu     sync.Mutex
	seq    []string
	jobs   map[string]*jobState
	nextID int

	Stdout string
	Stderr string
	Extra  map[string]string
}

type jobState struct {
	tmpDir string
	polls  int
}

// New constructs a mock broker whose jobs walk through statusSequence, one
// step per status query, sticking at the final value.
func New(statusSequence []string) *Server {
	if len(statusSequence) == 0 {
		statusSequence = []string{"submitted", "running", "finished"}
	}
	return &Server{
		seq:  statusSequence,
		jobs: make(map[string]*jobState),
	}
}

// Router returns the broker's HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v2/token/auth", s.handleAuth)
	r.Post("/api/v2/queue", s.handleSubmit)
	r.Get("/api/v2/queue/{id}", s.handleGetJob)
	r.Get("/artifacts/{name}", s.handleArtifact)
	return r
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" {
		http.Error(w, "bad credentials", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token": "brokerserv-" + strconv.FormatInt(time.Now().UnixNano(), 36),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	var req struct {
		Source   string `json:"code"`
		Platform string `json:"hardware_platform"`
		CollabID string `json:"collab_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Source == "" {
		http.Error(w, "bad submission", http.StatusBadRequest)
		return
	}
	tmpDir := tmpDirPattern.FindString(req.Source)
	if tmpDir == "" {
		http.Error(w, "no archive namespace in source", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextID++
	id := strconv.Itoa(s.nextID)
	s.jobs[id] = &jobState{tmpDir: tmpDir}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{
		"resource_uri": "/api/v2/queue/" + id,
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		http.Error(w, "no such job", http.StatusNotFound)
		return
	}
	step := job.polls
	if step >= len(s.seq) {
		step = len(s.seq) - 1
	}
	status := s.seq[step]
	job.polls++
	tmpDir := job.tmpDir
	s.mu.Unlock()

	resp := map[string]any{
		"id":     id,
		"status": status,
	}
	if status == "finished" || status == "error" {
		resp["output_data"] = []map[string]string{
			{"url": "/artifacts/" + tmpDir + ".tar.bz2"},
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	var tmpDir string
	for _, job := range s.jobs {
		if job.tmpDir+".tar.bz2" == name {
			tmpDir = job.tmpDir
			break
		}
	}
	stdout, stderr, extra := s.Stdout, s.Stderr, s.Extra
	s.mu.Unlock()

	if tmpDir == "" {
		http.Error(w, "no such artifact", http.StatusNotFound)
		return
	}
	archive, err := buildArchive(tmpDir, stdout, stderr, extra)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-bzip2")
	_, _ = w.Write(archive)
}

// buildArchive produces a tar.bz2 mirroring what the companion script's
// cleanup step creates remotely: the job's directory with sidecars and
// output files, plus one stray entry outside the namespace.
func buildArchive(tmpDir, stdout, stderr string, extra map[string]string) ([]byte, error) {
	var raw bytes.Buffer
	tw := tar.NewWriter(&raw)

	files := map[string]string{
		tmpDir + "/" + tmpDir + ".stdout": stdout,
		tmpDir + "/" + tmpDir + ".stderr": stderr,
		"stray/outside.txt":               "not part of the job namespace\n",
	}
	for name, content := range extra {
		files[tmpDir+"/"+name] = content
	}
	for name, content := range files {
		hdr := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(content)),
			ModTime: time.Now(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	zw, err := bzip2.NewWriter(&out, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Start serves the mock broker on listenAddr and returns a stop function.
func Start(listenAddr string, s *Server) (func(), error) {
	srv := &http.Server{Addr: listenAddr, Handler: s.Router()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	stop := func() {
		_ = srv.Close()
		<-errCh
	}
	// Give the listener a moment to fail fast on a bad address
	select {
	case err := <-errCh:
		return nil, fmt.Errorf("brokerserv: %w", err)
	case <-time.After(50 * time.Millisecond):
	}
	return stop, nil
}
