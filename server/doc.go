// Package server runs the HTTP surface of speechkit services. A Server
// wraps a Gin engine in a net/http middleware stack (server/middleware),
// serves it over HTTP/1.1 and h2c, and registers itself as a lifecycle
// component so bootstrap starts it last and stops it first.
//
// ApplyDefaults installs recovery, request IDs, CORS, the upload size limit
// and request logging, and mounts /health, /info and /version
// (server/endpoint). Handlers report failures through RespondWithError,
// which renders *errors.AppError values as the service's error body.
package server
