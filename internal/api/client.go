// Package api is the request layer: it builds authenticated JSON calls
// against the Conduit backend, applies the request timeout, and maps every
// failure into the user-visible error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"conduit/internal/entity"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://conduit.productionready.io/api"

// DefaultTimeout bounds every HTTP call.
const DefaultTimeout = 5000 * time.Millisecond

// Generic failure messages. Transport problems and unreadable bodies are
// indistinguishable to the user beyond these two.
const (
	requestErrorMsg = "Request error"
	dataErrorMsg    = "Data error"
)

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.WithField("component", "api_client"),
	}
}

// do performs one call. A nil error slice means success; out, when non-nil,
// holds the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, creds *entity.Credentials, body any, out any) []entity.ErrorMessage {
	log := c.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"method":     method,
		"path":       path,
	})

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			log.WithError(err).Error("Failed to encode request body")
			return entity.Messages(requestErrorMsg)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		log.WithError(err).Error("Failed to build request")
		return entity.Messages(requestErrorMsg)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		req.Header.Set("Authorization", "Token "+creds.AuthToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("Request failed")
		return entity.Messages(requestErrorMsg)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("Failed to read response body")
		return entity.Messages(requestErrorMsg)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("Backend rejected request")
		return decodeErrors(raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.WithError(err).Warn("Malformed response body")
			return entity.Messages(dataErrorMsg)
		}
	}
	return nil
}

// decodeErrors maps a non-2xx body into messages. A parseable
// {errors: {field: [msg, …]}} yields one "field msg1, msg2" message per
// field (field order is sorted for determinism); anything else is a data
// error.
func decodeErrors(raw []byte) []entity.ErrorMessage {
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Errors) == 0 {
		return entity.Messages(dataErrorMsg)
	}

	fields := make([]string, 0, len(body.Errors))
	for field := range body.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]entity.ErrorMessage, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, entity.ErrorMessage(fmt.Sprintf("%s %s", field, strings.Join(body.Errors[field], ", "))))
	}
	return msgs
}

// credsOf derives request credentials from an optional viewer context.
func credsOf(viewer *entity.Viewer) *entity.Credentials {
	if viewer == nil {
		return nil
	}
	creds := viewer.Credentials()
	return &creds
}

// Wire envelopes.

type userEnvelope struct {
	User entity.UserJSON `json:"user"`
}

type profileEnvelope struct {
	Profile entity.ProfileJSON `json:"profile"`
}

type articleEnvelope struct {
	Article entity.ArticleJSON `json:"article"`
}

type articlesEnvelope struct {
	Articles      []entity.ArticleJSON `json:"articles"`
	ArticlesCount int                  `json:"articlesCount"`
}

type commentEnvelope struct {
	Comment entity.CommentJSON `json:"comment"`
}

type commentsEnvelope struct {
	Comments []entity.CommentJSON `json:"comments"`
}

type tagsEnvelope struct {
	Tags []string `json:"tags"`
}
