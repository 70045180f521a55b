// Package api provides the HTTP client for the workout admin backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/liftdesk/liftdesk/internal/errors"
	"github.com/liftdesk/liftdesk/internal/logging"
)

const (
	// loginPath is the credential exchange endpoint.
	loginPath = "/api/auth/login"

	// workoutsPath is the admin workout collection endpoint.
	workoutsPath = "/api/admin/workouts"
)

// CredentialSource supplies the Authorization header value for authenticated
// requests. It is consulted immediately before each request, never cached, so
// an externally cleared session is detected per call. A missing credential
// must be reported as errors.ErrMissingCredential so callers can fail before
// any network attempt.
type CredentialSource interface {
	AuthHeader() (string, error)
}

// Client is the HTTP client for the workout admin API.
type Client struct {
	baseURL    string
	creds      CredentialSource
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the backend at baseURL. The client applies
// no request timeout: failures surface only on a network error or a server
// response, never on elapsed time.
func NewClient(baseURL string, creds CredentialSource, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: &http.Client{},
		logger:     logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the backend base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges the operator's credentials for a bearer token. A rejected
// login returns an *errors.AuthError carrying the server's message verbatim;
// no response at all returns an error wrapping errors.ErrUnreachable. The
// token is returned to the caller, not persisted here.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	requestID := uuid.NewString()
	log := c.logger.WithRequest(requestID).WithOp(string(errors.OpLogin))

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", errors.Wrap(err, "marshal login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create login request")
	}
	c.setHeaders(req, requestID)
	req.Header.Set("Content-Type", "application/json")

	log.Debug("sending login request", "email", email)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("login request failed", "error", err.Error())
		return "", errors.NewRequestError(errors.OpLogin, unreachable(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewRequestError(errors.OpLogin, err)
	}

	if !success(resp.StatusCode) {
		log.Warn("login rejected", "status", resp.StatusCode)
		return "", errors.NewAuthError(serverMessage(respBody)).WithEmail(email)
	}

	var data loginResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", errors.NewRequestError(errors.OpLogin, err)
	}
	if data.Token == "" {
		return "", errors.NewRequestError(errors.OpLogin, errors.New("login response missing token"))
	}

	log.Info("login succeeded", "email", email)
	return data.Token, nil
}

// ListWorkouts fetches the workout records matching query, in server order.
// An empty query returns all records. Requires a credential; without one it
// fails with errors.ErrMissingCredential before any network call.
func (c *Client) ListWorkouts(ctx context.Context, query string) ([]WorkoutRecord, error) {
	header, err := c.creds.AuthHeader()
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	log := c.logger.WithRequest(requestID).WithOp(string(errors.OpFetch))

	endpoint := c.baseURL + workoutsPath
	if query != "" {
		endpoint += "?query=" + url.QueryEscape(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create fetch request")
	}
	c.setHeaders(req, requestID)
	req.Header.Set("Authorization", header)

	log.Debug("fetching workouts", "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("fetch request failed", "error", err.Error())
		return nil, errors.NewRequestError(errors.OpFetch, unreachable(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewRequestError(errors.OpFetch, err)
	}

	if !success(resp.StatusCode) {
		log.Warn("fetch rejected", "status", resp.StatusCode)
		return nil, errors.NewRequestError(errors.OpFetch, nil).
			WithStatus(resp.StatusCode).
			WithServerMessage(serverMessage(respBody))
	}

	var records []WorkoutRecord
	if err := json.Unmarshal(respBody, &records); err != nil {
		return nil, errors.NewRequestError(errors.OpFetch, err)
	}

	log.Debug("workouts fetched", "count", len(records))
	return records, nil
}

// UpdateWorkout submits the full record as a PUT against its id. Requires a
// credential; without one it fails with errors.ErrMissingCredential before
// any network call.
func (c *Client) UpdateWorkout(ctx context.Context, record WorkoutRecord) error {
	header, err := c.creds.AuthHeader()
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	log := c.logger.WithRequest(requestID).WithOp(string(errors.OpUpdate))

	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal workout record")
	}

	endpoint := c.baseURL + workoutsPath + "/" + strconv.Itoa(record.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create update request")
	}
	c.setHeaders(req, requestID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", header)

	log.Debug("updating workout", "id", record.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("update request failed", "error", err.Error())
		return errors.NewRequestError(errors.OpUpdate, unreachable(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewRequestError(errors.OpUpdate, err)
	}

	if !success(resp.StatusCode) {
		log.Warn("update rejected", "id", record.ID, "status", resp.StatusCode)
		return errors.NewRequestError(errors.OpUpdate, nil).
			WithStatus(resp.StatusCode).
			WithServerMessage(serverMessage(respBody))
	}

	log.Info("workout updated", "id", record.ID)
	return nil
}

// DeleteWorkout deletes the record with the given id. Requires a credential;
// without one it fails with errors.ErrMissingCredential before any network
// call.
func (c *Client) DeleteWorkout(ctx context.Context, id int) error {
	header, err := c.creds.AuthHeader()
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	log := c.logger.WithRequest(requestID).WithOp(string(errors.OpDelete))

	endpoint := c.baseURL + workoutsPath + "/" + strconv.Itoa(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "create delete request")
	}
	c.setHeaders(req, requestID)
	req.Header.Set("Authorization", header)

	log.Debug("deleting workout", "id", id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("delete request failed", "error", err.Error())
		return errors.NewRequestError(errors.OpDelete, unreachable(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewRequestError(errors.OpDelete, err)
	}

	if !success(resp.StatusCode) {
		log.Warn("delete rejected", "id", id, "status", resp.StatusCode)
		return errors.NewRequestError(errors.OpDelete, nil).
			WithStatus(resp.StatusCode).
			WithServerMessage(serverMessage(respBody))
	}

	log.Info("workout deleted", "id", id)
	return nil
}

// setHeaders applies the headers common to every request.
func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
}

// success reports whether the status code is in the 2xx range.
func success(code int) bool {
	return code >= 200 && code < 300
}

// unreachable tags a transport-level failure with ErrUnreachable so callers
// can distinguish "no response at all" from a server-reported error.
func unreachable(err error) error {
	return fmt.Errorf("%w: %v", errors.ErrUnreachable, err)
}

// serverMessage extracts the message from an {error: "..."} response body.
// Returns the empty string when the body is empty or not in that shape.
func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return eb.Error
}
