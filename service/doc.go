// Package service defines the boundary contract between a parameter filter
// chain and the collaborator that actually executes remote-object method
// invocations.
//
// The canonical Service interface lives here so transport implementations
// (HTTP/JSON in service/rest, in-memory Mock in this package, custom backends
// elsewhere) can be swapped without touching the scoping layer. A Service
// receives the method name, the accumulated scoping parameters as a read-only
// Params view and the positional call arguments; everything about the wire —
// serialization, authentication, retries — is its own business.
package service
