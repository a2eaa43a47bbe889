package cmd

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"
)

// sessionConfig is the persisted per-user session: collaboration id,
// username and the last obtained access token. The JSON shape is fixed by
// the broker ecosystem; other NMPI clients read the same file.
type sessionConfig struct {
	CollabID string `json:"collab_id"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

// loadSessionConfig reads the session file and prompts interactively for
// any missing identity fields. A missing or unparseable file degrades to an
// empty configuration with a warning; the session then proceeds through the
// first-run prompts.
func loadSessionConfig(log *zap.Logger, path string) sessionConfig {
	var sc sessionConfig
	b, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Warn("session config not found, starting with empty configuration", zap.String("path", path))
	case err != nil:
		log.Warn("session config unreadable, starting with empty configuration",
			zap.String("path", path), zap.Error(err))
	default:
		if jerr := json.Unmarshal(b, &sc); jerr != nil {
			log.Warn("session config unparseable, starting with empty configuration",
				zap.String("path", path), zap.Error(jerr))
			sc = sessionConfig{}
		}
	}
	if sc.CollabID == "" {
		sc.CollabID = promptFunc("Collab ID: ")
	}
	if sc.Username == "" {
		sc.Username = promptFunc("Username: ")
	}
	return sc
}

// saveSessionConfig persists the session, including the current token.
// Called after every successful submission.
func saveSessionConfig(path string, sc sessionConfig) error {
	b, err := json.MarshalIndent(sc, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
