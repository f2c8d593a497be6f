package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/remoteobj/internal/testutil"
	"github.com/hupe1980/remoteobj/mask"
	"github.com/hupe1980/remoteobj/service"
)

// -------------------- Chaining & Forwarding --------------------

func TestScope_ChainAndForward(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").
		Returns("getObject", map[string]any{"id": 42}).
		Build()

	s := New(svc)
	s, err := s.WithObjectID(42)
	require.NoError(t, err)
	s, err = s.WithMasks("mask[id]", "mask[id,hostname]")
	require.NoError(t, err)
	s, err = s.WithResultWindow(10, 5)
	require.NoError(t, err)
	s, err = s.WithObjectFilter(PropertyFilter("domain", "example.org"))
	require.NoError(t, err)

	result, err := s.Call(context.Background(), "getObject", "extra")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 42}, result)

	require.Len(t, svc.Calls, 1)
	call := svc.Calls[0]
	assert.Equal(t, "getObject", call.Method)
	assert.Equal(t, []any{"extra"}, call.Args)
	assert.Equal(t, 42, call.ObjectID)
	assert.Equal(t, "mask[id,hostname]", call.Mask)
	assert.True(t, call.HasWindow)
	assert.Equal(t, 10, call.Offset)
	assert.Equal(t, 5, call.Limit)
	require.True(t, call.HasFilter)
	assert.Equal(t, map[string]any{"domain": map[string]any{"operation": "example.org"}}, call.Filter)
}

func TestScope_ServiceNameRelaysTarget(t *testing.T) {
	svc := testutil.NewServiceBuilder("Billing_Invoice").Build()
	assert.Equal(t, "Billing_Invoice", New(svc).ServiceName())
}

func TestScope_EmptyChainRendersNothing(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").Build()
	s := New(svc)

	_, err := s.Call(context.Background(), "getObject")
	require.NoError(t, err)

	call := svc.Calls[0]
	assert.False(t, call.HasObjectID)
	assert.False(t, call.HasMask)
	assert.False(t, call.HasWindow)
	assert.False(t, call.HasFilter)
}

// -------------------- Immutability --------------------

func TestScope_ChainingLeavesReceiverUnchanged(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").Build()
	base := New(svc)

	masked, err := base.WithMasks("mask[id]")
	require.NoError(t, err)
	_, err = masked.WithMasks("mask[hostname]")
	require.NoError(t, err)
	_, err = masked.WithObjectID(7)
	require.NoError(t, err)

	// base never gained a mask; masked never gained hostname or an id.
	_, ok := base.ObjectMask()
	assert.False(t, ok)

	m, ok := masked.ObjectMask()
	require.True(t, ok)
	assert.Equal(t, "mask[id]", m)

	_, ok = masked.ObjectID()
	assert.False(t, ok)
}

func TestScope_FailedOperationLeavesScopeUsable(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").Build()
	s, err := New(svc).WithMasks("mask[id]")
	require.NoError(t, err)

	_, err = s.WithMasks()
	assert.Error(t, err)
	_, err = s.WithMasks("")
	assert.Error(t, err)
	_, err = s.WithMasks("mask[")
	assert.Error(t, err)

	m, ok := s.ObjectMask()
	require.True(t, ok)
	assert.Equal(t, "mask[id]", m)
}

// -------------------- Scoping operation validation --------------------

func TestScope_WithObjectIDNil(t *testing.T) {
	s := New(testutil.NewServiceBuilder("Account").Build())

	_, err := s.WithObjectID(nil)
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "WithObjectID", argErr.Op)
}

func TestScope_WithMasksValidation(t *testing.T) {
	s := New(testutil.NewServiceBuilder("Account").Build())

	_, err := s.WithMasks()
	var argErr *ArgumentError
	assert.True(t, errors.As(err, &argErr))

	_, err = s.WithMasks("mask[id]", "")
	assert.True(t, errors.As(err, &argErr))

	_, err = s.WithMasks("mask[id")
	var merr *mask.MalformedMaskError
	assert.True(t, errors.As(err, &merr))
}

func TestScope_WithResultWindowValidation(t *testing.T) {
	s := New(testutil.NewServiceBuilder("Account").Build())

	_, err := s.WithResultWindow(-1, 5)
	assert.Error(t, err)
	_, err = s.WithResultWindow(0, -5)
	assert.Error(t, err)

	s2, err := s.WithResultWindow(0, 0)
	require.NoError(t, err)
	off, ok := s2.ResultOffset()
	assert.True(t, ok)
	assert.Equal(t, 0, off)
}

func TestScope_WithObjectFilterNil(t *testing.T) {
	s := New(testutil.NewServiceBuilder("Account").Build())
	_, err := s.WithObjectFilter(nil)
	var argErr *ArgumentError
	assert.True(t, errors.As(err, &argErr))
}

func TestScope_FilterReplacesNotMerges(t *testing.T) {
	s := New(testutil.NewServiceBuilder("Account").Build())

	s, err := s.WithObjectFilter(PropertyFilter("domain", "a.org"))
	require.NoError(t, err)
	s, err = s.WithObjectFilter(PropertyFilter("hostname", "web1"))
	require.NoError(t, err)

	f, ok := s.ObjectFilter()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"hostname": map[string]any{"operation": "web1"}}, f)
}

// -------------------- Lazy mask reduction --------------------

func TestScope_MasksAccumulateAcrossChainAndReduceAtRender(t *testing.T) {
	s := New(testutil.NewServiceBuilder("Account").Build())

	s, err := s.WithMasks("mask[a[p]]")
	require.NoError(t, err)
	s, err = s.WithMasks("mask[a[q]]", "mask(A).x")
	require.NoError(t, err)

	m, ok := s.ObjectMask()
	require.True(t, ok)
	assert.Equal(t, "[mask[a[p,q]],mask(A).x]", m)
}

// -------------------- Non-forwardable calls --------------------

func TestScope_CallRefusesNonAlphanumericMethod(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").Build()
	s := New(svc)

	_, err := s.Call(context.Background(), "!!!")
	var uerr *UnhandledCallError
	require.True(t, errors.As(err, &uerr))
	assert.Empty(t, svc.Calls)
}

func TestScope_CallRefusesFuncArguments(t *testing.T) {
	svc := testutil.NewServiceBuilder("Account").Build()
	s := New(svc)

	_, err := s.Call(context.Background(), "getObject", func() {})
	var uerr *UnhandledCallError
	require.True(t, errors.As(err, &uerr))
	assert.Empty(t, svc.Calls)
}

// -------------------- Error passthrough --------------------

func TestScope_TransportErrorPropagatesUnchanged(t *testing.T) {
	terr := &service.TransportError{Service: "Account", Method: "deleteObject", Status: 500, Message: "boom"}
	svc := testutil.NewServiceBuilder("Account").Fails("deleteObject", terr).Build()

	_, err := New(svc).Call(context.Background(), "deleteObject")
	assert.Same(t, terr, err)
}
