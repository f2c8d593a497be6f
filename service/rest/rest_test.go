package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/remoteobj/scope"
	"github.com/hupe1980/remoteobj/service"
)

type stubParams struct {
	id     any
	mask   string
	offset int
	limit  int
	window bool
	filter map[string]any
}

func (p stubParams) ObjectID() (any, bool) { return p.id, p.id != nil }

func (p stubParams) ObjectMask() (string, bool) { return p.mask, p.mask != "" }

func (p stubParams) ResultOffset() (int, bool) { return p.offset, p.window }

func (p stubParams) ResultLimit() (int, bool) { return p.limit, p.window }
func (p stubParams) ObjectFilter() (map[string]any, bool) {
	return p.filter, p.filter != nil
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService("Account", func(o *Options) {
		o.Endpoint = srv.URL
		o.Username = "user"
		o.APIKey = "key"
	})
}

func TestService_RequestShape(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"id":42}`))
	})

	params := stubParams{
		id:     42,
		mask:   "mask[id,hostname]",
		offset: 10,
		limit:  5,
		window: true,
		filter: map[string]any{"domain": map[string]any{"operation": "example.org"}},
	}

	res, err := svc.Invoke(context.Background(), "getObject", params, []any{"arg1", 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(42)}, res)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/Account/42/getObject.json", got.URL.Path)

	q := got.URL.Query()
	assert.Equal(t, "mask[id,hostname]", q.Get("objectMask"))
	assert.Equal(t, "10,5", q.Get("resultLimit"))

	var filter map[string]any
	require.NoError(t, json.Unmarshal([]byte(q.Get("objectFilter")), &filter))
	assert.Equal(t, params.filter, filter)

	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "key", pass)
	assert.NotEmpty(t, got.Header.Get("X-Request-Id"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.Equal(t, map[string]any{"parameters": []any{"arg1", float64(2)}}, body)
}

func TestService_GetWhenNoArguments(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Account/getObject.json", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`"ok"`))
	})

	res, err := svc.Invoke(context.Background(), "getObject", stubParams{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}

func TestService_ErrorEnvelope(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Object does not exist","code":"NotFound"}`))
	})

	_, err := svc.Invoke(context.Background(), "getObject", stubParams{}, nil)

	var terr *service.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusNotFound, terr.Status)
	assert.Contains(t, terr.Message, "Object does not exist")
	assert.Contains(t, terr.Message, "NotFound")
}

func TestService_HTTPErrorWithoutEnvelope(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Invoke(context.Background(), "getObject", stubParams{}, nil)

	var terr *service.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusInternalServerError, terr.Status)
}

func TestService_ConnectionFailure(t *testing.T) {
	svc := NewService("Account", func(o *Options) {
		o.Endpoint = "http://127.0.0.1:1"
	})

	_, err := svc.Invoke(context.Background(), "getObject", stubParams{}, nil)

	var terr *service.TransportError
	require.True(t, errors.As(err, &terr))
	assert.NotNil(t, errors.Unwrap(terr))
}

// End-to-end: a scope chain forwarding through the REST transport.
func TestService_ThroughScopeChain(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Account/7/getHardware.json", r.URL.Path)
		assert.Equal(t, "mask[id,hostname]", r.URL.Query().Get("objectMask"))
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	})

	s, err := scope.New(svc).WithObjectID(7)
	require.NoError(t, err)
	s, err = s.WithMasks("mask[id]", "mask[hostname]")
	require.NoError(t, err)

	res, err := s.Call(context.Background(), "getHardware")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": float64(1)}, map[string]any{"id": float64(2)}}, res)
}
