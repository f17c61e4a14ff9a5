// Package middleware contains HTTP middleware for the Fiber admin API.
//
// # Components
//
//   - Auth: API key validation (X-API-Key) protecting admin endpoints.
//   - RayID: a per-request id, stored in locals and echoed in the X-Ray-ID header.
package middleware
