// Package remoteobj provides a high-level façade over the scoping chain and
// service abstractions for calling remote-object APIs. Most applications
// interact with this package by:
//  1. Creating a Client via New() (optionally overriding configuration and logger)
//  2. Obtaining a scope for a named remote service (Service) or a custom
//     backend (ServiceFrom)
//  3. Chaining scoping calls (object id, masks, result window, filter) and
//     forwarding a method invocation with Call
//
// The façade wires the REST transport to the loaded configuration while
// keeping the scoping core free of any network concern. Defaults are safe for
// local development; production deployments typically supply explicit
// credentials and a structured logger.
package remoteobj

import (
	"github.com/hupe1980/remoteobj/config"
	"github.com/hupe1980/remoteobj/logging"
	"github.com/hupe1980/remoteobj/scope"
	"github.com/hupe1980/remoteobj/service"
	"github.com/hupe1980/remoteobj/service/rest"
)

// Options configures the Client.
type Options struct {
	// Config supplies endpoint and credentials. Defaults to config.Load().
	Config *config.Config

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Client is the high-level façade handing out parameter filter chains for
// named remote services.
type Client struct {
	opts Options
}

// New creates a new Client with optional overrides. Unset options fall back
// to the environment-driven configuration and a NoOp logger.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Config: config.Load(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config == nil {
		opts.Config = config.Load()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Client{opts: opts}
}

// Service returns a fresh parameter filter chain over a REST-backed remote
// service with the given name.
func (c *Client) Service(name string) *scope.Scope {
	svc := rest.NewService(name, func(o *rest.Options) {
		o.Endpoint = c.opts.Config.Endpoint
		o.Username = c.opts.Config.Username
		o.APIKey = c.opts.Config.APIKey
		o.Timeout = c.opts.Config.Timeout()
		o.Logger = c.opts.Logger
	})
	return c.ServiceFrom(svc)
}

// ServiceFrom returns a fresh parameter filter chain over any Service
// implementation (mock, custom transport).
func (c *Client) ServiceFrom(svc service.Service) *scope.Scope {
	return scope.New(svc, func(o *scope.Options) {
		o.Logger = c.opts.Logger
	})
}
