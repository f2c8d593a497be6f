// Package scope implements the request-parameter accumulator for remote-object
// calls: an immutable Parameter Set (object id, object masks, pagination
// window, filter predicate) plus the chainable Scope that builds one up and
// finally forwards a method invocation to a service.Service.
//
// Every scoping call returns a new *Scope over a new parameter set; the scope
// it was called on is never modified. A scope handed out earlier therefore
// stays valid no matter how much chaining happens elsewhere:
//
//	base := scope.New(svc)
//	acct, _ := base.WithObjectID(42)
//	masked, _ := acct.WithMasks("mask[id,hostname]")
//	res, err := masked.Call(ctx, "getObject")
//	// acct and base are unchanged and reusable
//
// Masks accumulate un-reduced across the whole chain; reduction to a minimal,
// duplicate-free mask happens lazily when ObjectMask is rendered.
package scope
