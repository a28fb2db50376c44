// Package remote talks to the progress backend: a PostgREST-style API
// with password-grant auth. All calls are push-only upserts, so retries
// are safe.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// DefaultRetryAttempts bounds retries of transient failures within one call.
const DefaultRetryAttempts uint = 2

// Client is an HTTP client for the progress backend.
type Client struct {
	httpClient       *resty.Client
	apiKey           string
	maxRetryAttempts uint
	log              *slog.Logger
}

// NewClient creates a client against baseURL. apiKey is sent both as the
// project key and as the default bearer token; SetToken replaces the
// bearer after sign-in.
func NewClient(baseURL, apiKey string, retryAttempts uint, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("apikey", apiKey)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		apiKey:           apiKey,
		maxRetryAttempts: retryAttempts,
		log:              log,
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// SetToken switches the bearer token to a signed-in user's access token.
func (c *Client) SetToken(accessToken string) {
	c.httpClient.SetHeader("Authorization", "Bearer "+accessToken)
}

// ProfileRecord is the remote shape of the learner profile. Times travel
// as ISO-8601 strings; the local singleton row id is never sent.
type ProfileRecord struct {
	UserID                 string  `json:"user_id"`
	TargetDate             string  `json:"target_date,omitempty"`
	GoalScore              int     `json:"goal_score,omitempty"`
	CurrentStreak          int     `json:"current_streak"`
	BestStreak             int     `json:"best_streak"`
	QuestionsMastered      int     `json:"questions_mastered"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
	Accuracy               float64 `json:"accuracy"`
	Level                  int     `json:"level"`
	TotalXP                int     `json:"total_xp"`
	LastActivity           string  `json:"last_activity,omitempty"`
	UpdatedAt              string  `json:"updated_at"`
}

// AttemptRecord is the remote shape of one attempt. The composite key
// (user_id, question_id, timestamp) makes re-pushes idempotent.
type AttemptRecord struct {
	UserID           string `json:"user_id"`
	QuestionID       string `json:"question_id"`
	IsCorrect        bool   `json:"is_correct"`
	SelectedAnswer   int    `json:"selected_answer"`
	Timestamp        string `json:"timestamp"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// FormatTime renders a timestamp the way the backend expects it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UpsertProfile pushes the profile row, merging on the user_id key.
func (c *Client) UpsertProfile(ctx context.Context, p ProfileRecord) error {
	return c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader("Prefer", "resolution=merge-duplicates").
			SetQueryParam("on_conflict", "user_id").
			SetBody([]ProfileRecord{p}).
			Post("/rest/v1/profiles")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
}

// UpsertAttempts pushes the attempt log in one batch, merging on the
// composite conflict key.
func (c *Client) UpsertAttempts(ctx context.Context, records []AttemptRecord) error {
	if len(records) == 0 {
		return nil
	}
	return c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader("Prefer", "resolution=merge-duplicates").
			SetQueryParam("on_conflict", "user_id,question_id,timestamp").
			SetBody(records).
			Post("/rest/v1/attempts")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
}

// Session is the result of a password sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignIn exchanges credentials for a user session and installs its
// access token on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var result signInResponse
	err := c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetQueryParam("grant_type", "password").
			SetBody(signInRequest{Email: email, Password: password}).
			SetResult(&result).
			Post("/auth/v1/token")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.AccessToken == "" || result.User.ID == "" {
		return nil, fmt.Errorf("sign-in response missing token or user id")
	}

	c.SetToken(result.AccessToken)
	c.log.Debug("signed in", "user_id", result.User.ID)
	return &Session{AccessToken: result.AccessToken, UserID: result.User.ID}, nil
}

func (c *Client) withRetry(ctx context.Context, call func() error) error {
	return retry.Do(
		func() error {
			if err := call(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// isRetryableError reports whether an error is transient enough to retry.
// Auth failures and other 4xx responses are final.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}
