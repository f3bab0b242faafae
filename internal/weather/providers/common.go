package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

var (
	errServerError      = errors.New("server error")
	errCircuitOpen      = errors.New("circuit breaker open")
	errUnexpectedResult = errors.New("unexpected result type from circuit breaker")
)

func newCircuitBreaker(name string, log zerolog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// doRequest executes a single request through the circuit breaker. Transport failures and
// 5xx answers count against the breaker; any response that arrived is returned to the caller
// so it can classify the status itself. There are no retries.
func doRequest(
	ctx context.Context,
	cb *gobreaker.CircuitBreaker,
	send func(ctx context.Context) (*resty.Response, error),
) (*resty.Response, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, sendErr := send(ctx)
		if sendErr != nil {
			return nil, sendErr
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, fmt.Errorf("%w: %d", errServerError, resp.StatusCode())
		}
		return resp, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
	}

	if resp, ok := result.(*resty.Response); ok && resp != nil {
		return resp, nil
	}
	if err == nil {
		err = errUnexpectedResult
	}
	return nil, err
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
