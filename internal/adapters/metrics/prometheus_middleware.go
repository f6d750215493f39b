package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
)

// outcomeReporter is implemented by command responses that can end as a no-op
type outcomeReporter interface {
	Succeeded() bool
}

// PrometheusMiddleware creates a middleware that records command execution metrics.
// Responses reporting Succeeded() == false are counted as no_op rather than error.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), statusOf(response, err))
		return response, err
	}
}

func statusOf(response mediator.Response, err error) string {
	if err != nil {
		return StatusError
	}
	if r, ok := response.(outcomeReporter); ok && !r.Succeeded() {
		return StatusNoOp
	}
	return StatusSuccess
}

// extractCommandName extracts a clean command name from the request using reflection
// Examples:
//   - "*commands.BuyGoodCommand" → "BuyGoodCommand"
//   - "*queries.GetMarketQuery" → "GetMarketQuery"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
