// Package manifest reduces a package graph to a flat, deterministic
// description of its parts and relationships, serialized as JSON. The
// manifest is the exchange format between the engine and everything that
// consumes graph structure without needing payloads: the CLI's inspect
// output, the HTTP API, the render pipeline, the cache, and the catalog.
package manifest
