package testutil

import (
	"github.com/hupe1980/remoteobj/service"
)

// ServiceBuilder helps construct pre-stubbed mock services with fluent
// chaining for tests. Example:
//
//	svc := NewServiceBuilder("Account").Returns("getObject", obj).Fails("deleteObject", err).Build()
type ServiceBuilder struct {
	name      string
	responses map[string]any
	failures  map[string]error
}

// NewServiceBuilder creates a new builder for a mock service with the given
// name. Use chainable methods (Returns, Fails) then call Build.
func NewServiceBuilder(name string) *ServiceBuilder {
	return &ServiceBuilder{name: name, responses: map[string]any{}, failures: map[string]error{}}
}

// Returns registers a canned result for a method (chainable).
func (b *ServiceBuilder) Returns(method string, result any) *ServiceBuilder {
	b.responses[method] = result
	return b
}

// Fails makes a method return err (chainable).
func (b *ServiceBuilder) Fails(method string, err error) *ServiceBuilder {
	b.failures[method] = err
	return b
}

// Build returns a *service.Mock with the stubbed behaviors applied.
func (b *ServiceBuilder) Build() *service.Mock {
	m := service.NewMock(b.name)
	for method, result := range b.responses {
		m.AddResponse(method, result)
	}
	for method, err := range b.failures {
		m.FailWith(method, err)
	}
	return m
}
