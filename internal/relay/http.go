package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// maxResponseBytes bounds how much of an upstream body gets read.
const maxResponseBytes = 4 << 20

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Request describes one forwarded HTTP call. Payload is form-encoded for
// POST and PUT and ignored otherwise.
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Payload map[string]string `json:"payload,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Credentials is the input for the login pass-through.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Forwarder relays generic HTTP calls to external services on behalf of the
// client shell. It applies no retries: the caller sees exactly one upstream
// outcome per request.
type Forwarder struct {
	client   *http.Client
	loginURL string
	logg     *logger.Logger
}

// NewForwarder wires the HTTP relay.
func NewForwarder(timeout time.Duration, loginURL string, logg *logger.Logger) (*Forwarder, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Forwarder{
		client:   &http.Client{Timeout: timeout},
		loginURL: loginURL,
		logg:     logg,
	}, nil
}

// Forward performs the call and classifies the outcome: a 2xx body is parsed
// as JSON, a 401 is an authentication failure, anything else is an upstream
// failure carrying the status and body.
func (f *Forwarder) Forward(ctx context.Context, input Request) (any, error) {
	method := strings.ToUpper(strings.TrimSpace(input.Method))
	if !allowedMethods[method] {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, fmt.Sprintf("unsupported method %q", input.Method))
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "url is required")
	}

	var body io.Reader
	if (method == http.MethodPost || method == http.MethodPut) && len(input.Payload) > 0 {
		form := url.Values{}
		for k, v := range input.Payload {
			form.Set(k, v)
		}
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, input.URL, body)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeValidation, err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range input.Headers {
		req.Header.Set(k, v)
	}

	ctx = f.logg.WithFields(ctx, map[string]any{
		"relay_method": method,
		"relay_url":    input.URL,
	})
	f.logg.Debug(ctx, "forwarding request")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logg.Error(ctx, "upstream request failed", err)
		return nil, pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "upstream request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "reading upstream response")
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeEncoding, err, "parsing upstream response")
		}
		return parsed, nil
	case resp.StatusCode == http.StatusUnauthorized:
		f.logg.Warn(ctx, "upstream rejected credentials")
		return nil, pkgErrors.New(pkgErrors.CodeNetwork, "authentication failed (401)").
			WithDetails(string(raw))
	default:
		f.logg.Warn(ctx, "upstream returned error status")
		return nil, pkgErrors.New(pkgErrors.CodeNetwork, fmt.Sprintf("upstream returned status %d", resp.StatusCode)).
			WithDetails(string(raw))
	}
}

// Login posts the credentials as JSON to the configured auth backend and
// returns its parsed response. Authentication logic itself stays external.
func (f *Forwarder) Login(ctx context.Context, creds Credentials) (any, error) {
	if f.loginURL == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "auth backend is not configured")
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, pkgErrors.New(pkgErrors.CodeValidation, "username and password are required")
	}

	payload, err := json.Marshal(creds)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeEncoding, err, "encoding credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.loginURL, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeValidation, err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "login request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeNetwork, err, "reading login response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, pkgErrors.New(pkgErrors.CodeNetwork, "authentication failed (401)").
			WithDetails(string(raw))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgErrors.New(pkgErrors.CodeNetwork, fmt.Sprintf("auth backend returned status %d", resp.StatusCode)).
			WithDetails(string(raw))
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeEncoding, err, "parsing login response")
	}

	f.logg.Info(f.logg.WithField(ctx, "username", creds.Username), "login forwarded")
	return parsed, nil
}
