// Package breach checks passwords against a Have I Been Pwned style range
// API without sending the password or its full hash. Only the first five hex
// characters of the SHA-1 digest leave the process.
package breach

import (
	"bufio"
	"context"
	"crypto/sha1" // #nosec G505 - SHA-1 is mandated by the range API
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/substantialcattle5/cipherdesk/internal/constants"
	cerrors "github.com/substantialcattle5/cipherdesk/internal/errors"
	"github.com/substantialcattle5/cipherdesk/internal/logger"
)

// State is the outcome of a breach lookup.
type State string

const (
	StateRejected State = "rejected"
	StateNotFound State = "not_found"
	StateFound    State = "found"
	StateError    State = "error"
	// StateSkipped is used by callers that disable the lookup.
	StateSkipped  State = "skipped"
)

// Result reports a breach lookup. Err is set only in StateError and wraps
// ErrNetwork.
type Result struct {
	State   State
	Pwned   bool
	Count   int64
	Message string
	Err     error
}

const (
	msgTooShort  = "Password must be at least 6 characters long."
	msgFound     = "This password has appeared in %s known data breaches!"
	msgNotFound  = "This password has not been found in known breaches."
	msgBadStatus = "Error checking pwned passwords."
	msgFailed    = "Failed to check pwned status: %v"
)

// Client queries the range endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	throttle   *Throttle
	log        *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// New returns a client for the public Pwned Passwords API with a 5 second
// timeout and its own 1.5 second throttle.
func New(options ...Option) *Client {
	c := &Client{
		endpoint:   constants.DefaultBreachEndpoint,
		userAgent:  constants.DefaultBreachUserAgent,
		httpClient: &http.Client{Timeout: constants.DefaultBreachTimeout},
	}
	for _, option := range options {
		option(c)
	}
	if c.throttle == nil {
		c.throttle = NewThrottle(constants.BreachMinInterval)
	}
	c.log = logger.OrDiscard(c.log)
	return c
}

// WithEndpoint sets the API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRoundTripper replaces the HTTP transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithThrottle shares t between clients. Every client created without it
// gets a private throttle.
func WithThrottle(t *Throttle) Option {
	return func(c *Client) {
		c.throttle = t
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// Check looks password up. It never returns an error directly; failures are
// reported as StateError in the Result.
func (c *Client) Check(ctx context.Context, password string) Result {
	if utf8.RuneCountInString(password) < constants.MinBreachPasswordLen {
		return Result{State: StateRejected, Message: msgTooShort}
	}

	prefix, suffix := HashParts(password)
	log := c.log.WithFields(logrus.Fields{"prefix": prefix})

	var result Result
	err := c.throttle.Do(ctx, func() error {
		var err error
		result, err = c.lookup(ctx, prefix, suffix)
		return err
	})
	if err != nil {
		log.WithError(err).Warn("breach lookup failed")
		if result.State != StateError {
			result = errorResult(fmt.Sprintf(msgFailed, err), err)
		}
		return result
	}

	log.WithFields(logrus.Fields{"state": result.State}).Debug("breach lookup finished")
	return result
}

// HashParts returns the uppercase SHA-1 hex digest of password split into
// the five-character range prefix and the 35-character suffix.
func HashParts(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) // #nosec G401 - SHA-1 is mandated by the range API
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:constants.BreachPrefixLength], digest[constants.BreachPrefixLength:]
}

func (c *Client) lookup(ctx context.Context, prefix, suffix string) (Result, error) {
	url := fmt.Sprintf("%s/range/%s", c.endpoint, prefix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("range API returned %s", resp.Status)
		return errorResult(msgBadStatus, err), err
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		candidate, count, ok := strings.Cut(line, ":")
		if !ok || candidate != suffix {
			continue
		}
		n, _ := strconv.ParseInt(count, 10, 64)
		return Result{
			State:   StateFound,
			Pwned:   true,
			Count:   n,
			Message: fmt.Sprintf(msgFound, count),
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to read range response: %w", err)
	}

	return Result{State: StateNotFound, Message: msgNotFound}, nil
}

func errorResult(message string, cause error) Result {
	return Result{
		State:   StateError,
		Message: message,
		Err:     fmt.Errorf("%w: %w", cerrors.ErrNetwork, cause),
	}
}
