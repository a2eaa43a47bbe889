package cmd

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// submitJob authenticates against the broker and submits the companion
// script. A cached token known to be expired is discarded up front. When
// authentication or submission fails while a cached token is in use, the
// token is dropped and the whole sequence retried exactly once with forced
// interactive re-authentication; a second failure is returned to the
// caller. After a successful submission the refreshed session (token plus
// first-run identity values) is persisted.
func submitJob(ctx context.Context, log *zap.Logger, cfg runConfig, sc *sessionConfig, script string) (string, brokerClient, error) {
	token := sc.Token
	if token != "" && tokenExpired(token) {
		log.Info("cached access token has expired")
		token = ""
	}

	req := jobRequest{
		Source:   script,
		Platform: cfg.Platform,
		CollabID: sc.CollabID,
	}
	if cfg.Wafer != 0 {
		req.HardwareConfig = map[string]int{"WAFER_MODULE": cfg.Wafer}
	}

	for {
		if token == "" {
			log.Info("no valid access token found; please re-enter your password to obtain a new access token")
		}
		broker := newBrokerFunc(cfg.BrokerURL, sc.Username, token)

		ref, err := authenticateAndSubmit(ctx, broker, req)
		if err != nil {
			if token != "" {
				log.Warn("submission with cached token failed, forcing re-authentication", zap.Error(err))
				token = ""
				continue
			}
			return "", nil, err
		}

		sc.Token = broker.Token()
		if err := saveSessionConfig(cfg.ConfigPath, *sc); err != nil {
			log.Warn("failed to persist session config", zap.String("path", cfg.ConfigPath), zap.Error(err))
		}

		jobID := jobIDFromReference(ref)
		log.Info("created job",
			zap.String("job_id", jobID),
			zap.String("queue_url", cfg.BrokerURL+"/app/#/queue/"+jobID))
		return jobID, broker, nil
	}
}

func authenticateAndSubmit(ctx context.Context, broker brokerClient, req jobRequest) (string, error) {
	if err := broker.Authenticate(ctx); err != nil {
		return "", err
	}
	return broker.Submit(ctx, req)
}

// jobIDFromReference normalizes a broker job reference (bare id or resource
// path like /api/v2/queue/42) to the bare id.
func jobIDFromReference(ref string) string {
	segments := strings.Split(ref, "/")
	return segments[len(segments)-1]
}
