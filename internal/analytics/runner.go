package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"

	"github.com/brandazine/stock-nudge/pkg/errors"
	"github.com/brandazine/stock-nudge/pkg/logger"
)

// QueryAPI is the slice of the Athena client the runner needs.
type QueryAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
}

type RunnerConfig struct {
	Database       string
	OutputLocation string
	MaxExecutions  int
	PollInterval   time.Duration
}

// Runner executes a parameterized query and polls for its completion.
type Runner struct {
	client QueryAPI
	cfg    RunnerConfig
	logger *logger.Logger
}

func NewRunner(client QueryAPI, cfg RunnerConfig, logger *logger.Logger) *Runner {
	return &Runner{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Execute starts the high-demand stock query and waits for it to finish,
// polling at most MaxExecutions times with PollInterval between attempts.
// It returns the S3 location of the result object. Exhausting the polling
// budget is terminal for the run.
func (r *Runner) Execute(ctx context.Context, params []string) (string, error) {
	start, err := r.client.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString: aws.String(HighDemandStockQuery),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(r.cfg.Database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(r.cfg.OutputLocation),
		},
		ExecutionParameters: params,
	})
	if err != nil {
		return "", errors.QueryExecution(err)
	}

	executionID := aws.ToString(start.QueryExecutionId)
	r.logger.Debug("started analytics query", "query_execution_id", executionID)

	for attempt := 0; attempt < r.cfg.MaxExecutions; attempt++ {
		out, err := r.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(executionID),
		})
		if err != nil {
			return "", errors.QueryExecution(err)
		}

		status := out.QueryExecution.Status
		switch status.State {
		case types.QueryExecutionStateSucceeded:
			return aws.ToString(out.QueryExecution.ResultConfiguration.OutputLocation), nil
		case types.QueryExecutionStateFailed, types.QueryExecutionStateCancelled:
			return "", errors.QueryExecution(fmt.Errorf("query %s %s: %s",
				executionID, status.State, aws.ToString(status.StateChangeReason)))
		}

		select {
		case <-ctx.Done():
			return "", errors.QueryExecution(ctx.Err())
		case <-time.After(r.cfg.PollInterval):
		}
	}

	return "", errors.QueryExecution(fmt.Errorf("query %s still running after %d polls", executionID, r.cfg.MaxExecutions))
}
