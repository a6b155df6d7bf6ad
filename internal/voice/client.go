package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const defaultRetryDelay = 500 * time.Millisecond

// ResponseError is a non-2xx answer from the voice API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

// Client calls the voice synthesis API.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "audio/wav")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
		retryDelay:       defaultRetryDelay,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError reports whether another attempt could succeed: transport
// failures, rate limiting and server errors are retried, other responses are not.
func isRetryableError(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.StatusCode == http.StatusTooManyRequests ||
			responseErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, errEmptyAudio)
}

var errEmptyAudio = errors.New("empty audio response")

// Synthesize implements the Synthesizer interface
func (client *Client) Synthesize(ctx context.Context, text string, model string) ([]byte, error) {
	var audio []byte
	attempt := 0
	if err := retry.Do(
		func() error {
			attempt++
			response, err := client.synthesize(ctx, text, model)
			if err != nil {
				if !isRetryableError(ctx, err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Info("Retrying voice API call",
					"attempt", attempt,
					"model", model,
					"error", err)
				return err
			}
			audio = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return audio, nil
}

func (client *Client) synthesize(ctx context.Context, text string, model string) ([]byte, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("text", text).
		SetQueryParam("speaker_name", model).
		Get("/voice")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, &ResponseError{
			StatusCode: response.StatusCode(),
			Body:       response.String(),
		}
	}

	audio := response.Bytes()
	if len(audio) == 0 {
		return nil, errEmptyAudio
	}
	slog.Default().Debug("voice synthesized",
		"model", model,
		"bytes", len(audio))
	return audio, nil
}
