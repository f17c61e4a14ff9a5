// Package mre defines the contract between the host application and the
// mixed-reality runtime that owns the session.
//
// The runtime owns users, the networked actor graph, attachments, physics and
// model loading. The application consumes it through small interfaces
// (AssetLoader, ActorFactory, Actor, Runtime) so the session logic can run
// against the in-process runtime in core/mre/memory or any other engine binding.
//
// Transforms use go-gl/mathgl mgl64 vectors and quaternions.
package mre
