package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/wake/snikket-web-portal/internal/muc"
)

// DefaultBaseURL is the loopback address the server binds by default.
const DefaultBaseURL = "http://127.0.0.1:5999"

// ErrUnparsedOutput is returned when shell output holds no recognizable
// affiliation.
var ErrUnparsedOutput = errors.New("unrecognized shell output")

// APIError is a non-200 response from the server.
type APIError struct {
	Status  int
	Message string
	Stderr  string
}

func (e *APIError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Stderr)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

type okBody struct {
	OK     bool   `json:"ok"`
	Stdout string `json:"stdout"`
}

type errorBody struct {
	Error  string `json:"error"`
	Stderr string `json:"stderr"`
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.http.SetAuthToken(token) }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client calls the MUC admin API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(2*time.Minute).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRoomsRaw returns the shell output of muc:list.
func (c *Client) ListRoomsRaw(ctx context.Context, mucDomain string) (string, error) {
	return c.post(ctx, "/muc/list", map[string]string{"muc_domain": mucDomain})
}

// ListRooms returns the room JIDs of mucDomain.
func (c *Client) ListRooms(ctx context.Context, mucDomain string) ([]string, error) {
	out, err := c.ListRoomsRaw(ctx, mucDomain)
	if err != nil {
		return nil, err
	}
	return muc.ParseRoomList(out), nil
}

// GetAffiliationRaw returns the shell output of get_affiliation.
func (c *Client) GetAffiliationRaw(ctx context.Context, room, user string) (string, error) {
	return c.post(ctx, "/muc/get-affiliation", map[string]string{"room": room, "user": user})
}

// GetAffiliation returns the affiliation of user in room.
func (c *Client) GetAffiliation(ctx context.Context, room, user string) (muc.Affiliation, error) {
	out, err := c.GetAffiliationRaw(ctx, room, user)
	if err != nil {
		return "", err
	}
	a, ok := muc.ParseAffiliation(out)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnparsedOutput, out)
	}
	return a, nil
}

// SetAffiliation sets the affiliation of user in room and returns the
// shell output.
func (c *Client) SetAffiliation(ctx context.Context, room, user string, a muc.Affiliation) (string, error) {
	return c.post(ctx, "/muc/set-affiliation", map[string]string{
		"room":        room,
		"user":        user,
		"affiliation": string(a),
	})
}

func (c *Client) post(ctx context.Context, path string, body map[string]string) (string, error) {
	var ok okBody
	var failure errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ok).
		SetError(&failure).
		Post(path)
	if err != nil {
		c.logger.Error("MUC API call failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to call %s: %w", path, err)
	}

	if resp.StatusCode() != 200 {
		apiErr := &APIError{Status: resp.StatusCode(), Message: failure.Error, Stderr: failure.Stderr}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		c.logger.Warn("MUC API returned error",
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("error", apiErr.Message))
		return "", apiErr
	}

	return ok.Stdout, nil
}
