// Package rest provides an implementation of service.Service speaking a
// JSON-over-HTTP remote-object protocol. It renders the accumulated scoping
// parameters (object id, object mask, result window, object filter) into the
// request URL and forwards positional call arguments in the request body.
//
// Request shape:
//
//	GET|POST {endpoint}/{ServiceName}/{objectID}/{method}.json
//	  ?objectMask=mask[...]&resultLimit=offset,limit&objectFilter={...}
//	body (only when arguments are present): {"parameters":[...]}
//
// A service-side failure arrives as an error envelope {"error":...,"code":...}
// and surfaces as a *service.TransportError, as do HTTP and connection
// failures. The package performs no retries.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/hupe1980/remoteobj/logging"
	"github.com/hupe1980/remoteobj/service"
)

// Options configure the REST transport.
type Options struct {
	// Endpoint is the API base URL, e.g. "https://api.example.com/rest/v3".
	Endpoint string

	// Username and APIKey are sent as HTTP basic auth credentials.
	Username string
	APIKey   string

	// HTTPClient overrides the default client (Timeout applies only to the
	// default one).
	HTTPClient *http.Client

	// Timeout for the default HTTP client.
	Timeout time.Duration

	// Logger receives request/response records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Service is an HTTP-backed remote service for one named remote-object type.
type Service struct {
	name   string
	opts   Options
	client *http.Client
	logger logging.Logger
}

var _ service.Service = (*Service)(nil)

// NewService creates a REST transport for the named remote service.
func NewService(name string, optFns ...func(o *Options)) *Service {
	opts := Options{
		Timeout: 30 * time.Second,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Service{name: name, opts: opts, client: client, logger: opts.Logger}
}

// Name implements service.Service.
func (s *Service) Name() string { return s.name }

// Invoke implements service.Service. It builds the request from the rendered
// parameter view, performs exactly one HTTP round trip and decodes the JSON
// result.
func (s *Service) Invoke(ctx context.Context, method string, params service.Params, args []any) (any, error) {
	req, err := s.buildRequest(ctx, method, params, args)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	s.logger.Debug("rest request", "service", s.name, "method", method, "url", req.URL.String(), "request_id", requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &service.TransportError{Service: s.name, Method: method, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.TransportError{Service: s.name, Method: method, Status: resp.StatusCode, Message: "reading response body", Cause: err}
	}

	return s.decodeResponse(method, resp.StatusCode, body)
}

func (s *Service) buildRequest(ctx context.Context, method string, params service.Params, args []any) (*http.Request, error) {
	u, err := s.buildURL(method, params)
	if err != nil {
		return nil, err
	}

	httpMethod := http.MethodGet
	var body io.Reader
	if len(args) > 0 {
		httpMethod = http.MethodPost
		payload, err := json.Marshal(map[string]any{"parameters": args})
		if err != nil {
			return nil, &service.TransportError{Service: s.name, Method: method, Message: "encoding call arguments", Cause: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, u, body)
	if err != nil {
		return nil, &service.TransportError{Service: s.name, Method: method, Message: "building request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.opts.Username != "" {
		req.SetBasicAuth(s.opts.Username, s.opts.APIKey)
	}
	return req, nil
}

// buildURL renders the accumulated parameters into the request URL. The
// object id becomes a path segment; mask, window and filter become query
// parameters. Absent values contribute nothing.
func (s *Service) buildURL(method string, params service.Params) (string, error) {
	path := s.opts.Endpoint + "/" + url.PathEscape(s.name)
	if id, ok := params.ObjectID(); ok {
		path += "/" + url.PathEscape(fmt.Sprintf("%v", id))
	}
	path += "/" + url.PathEscape(method) + ".json"

	q := url.Values{}
	if m, ok := params.ObjectMask(); ok {
		q.Set("objectMask", m)
	}
	if off, ok := params.ResultOffset(); ok {
		limit, _ := params.ResultLimit()
		q.Set("resultLimit", fmt.Sprintf("%d,%d", off, limit))
	}
	if f, ok := params.ObjectFilter(); ok {
		encoded, err := json.Marshal(f)
		if err != nil {
			return "", &service.TransportError{Service: s.name, Method: method, Message: "encoding object filter", Cause: err}
		}
		q.Set("objectFilter", string(encoded))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return path, nil
}

// decodeResponse maps the wire payload to a result value or a transport
// error. Error envelopes take precedence over the HTTP status so the remote
// side's message survives.
func (s *Service) decodeResponse(method string, status int, body []byte) (any, error) {
	if errMsg := gjson.GetBytes(body, "error"); errMsg.Exists() {
		terr := &service.TransportError{Service: s.name, Method: method, Status: status, Message: errMsg.String()}
		if code := gjson.GetBytes(body, "code"); code.Exists() {
			terr.Message = fmt.Sprintf("%s (%s)", errMsg.String(), code.String())
		}
		return nil, terr
	}
	if status >= http.StatusBadRequest {
		return nil, &service.TransportError{Service: s.name, Method: method, Status: status, Message: http.StatusText(status)}
	}
	if len(body) == 0 {
		return nil, nil
	}
	parsed := gjson.ParseBytes(body)
	return parsed.Value(), nil
}
