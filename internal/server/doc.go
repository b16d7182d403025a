// Package server exposes the blockgrid pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout             statements (JSON or TOML) -> layout JSON
//	POST /v1/render?format=svg  statements -> rendered artifact
//	GET  /healthz               liveness probe
//
// Every request is tagged with a job ID returned in the X-Job-ID header.
// Build errors caused by the statements themselves are reported as 422,
// bad request parameters as 400, and everything else as 500. Error bodies
// are JSON objects of the form {"code": "...", "error": "..."}.
package server
