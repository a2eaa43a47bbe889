package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// waitForJob polls the job status at a fixed interval until it reaches one
// of the two terminal states, logging every transition. There is no timeout
// and no backoff: a job stuck in a non-terminal state keeps the loop
// running indefinitely. That mirrors the broker's contract, where every
// queued job eventually resolves to finished or error.
func waitForJob(ctx context.Context, log *zap.Logger, broker brokerClient, jobID string) (string, error) {
	status := ""
	for {
		current, err := broker.JobStatus(ctx, jobID)
		if err != nil {
			return "", err
		}
		if current != status {
			log.Info("job status", zap.String("job_id", jobID), zap.String("status", current))
			status = current
		}
		if status == jobStatusFinished || status == jobStatusError {
			return status, nil
		}
		time.Sleep(pollInterval)
	}
}
