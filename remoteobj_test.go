package remoteobj

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/remoteobj/config"
	"github.com/hupe1980/remoteobj/internal/testutil"
	"github.com/hupe1980/remoteobj/scope"
)

func TestClient_ServiceFromMock(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").
		Returns("getObject", map[string]any{"id": 42}).
		Build()

	client := New()
	s := client.ServiceFrom(svc)
	assert.Equal(t, "Account", s.ServiceName())

	s, err := s.WithObjectID(42)
	require.NoError(t, err)
	s, err = s.WithMasks("mask[id]")
	require.NoError(t, err)
	s, err = s.WithObjectFilter(scope.PropertyFilter("domain", "example.org"))
	require.NoError(t, err)

	res, err := s.Call(context.Background(), "getObject")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 42}, res)

	require.Len(t, svc.Calls, 1)
	assert.Equal(t, "mask[id]", svc.Calls[0].Mask)
}

func TestClient_ServiceUsesConfig(t *testing.T) {
	client := New(func(o *Options) {
		o.Config = &config.Config{Endpoint: "https://example.org/rest", TimeoutSec: 5}
	})

	s := client.Service("Hardware_Server")
	assert.Equal(t, "Hardware_Server", s.ServiceName())
}

func TestNew_NilOverridesFallBackToDefaults(t *testing.T) {
	client := New(func(o *Options) {
		o.Config = nil
		o.Logger = nil
	})

	assert.NotNil(t, client.opts.Config)
	assert.NotNil(t, client.opts.Logger)
}
