// Package api serves conflict resolution over HTTP.
//
// # Endpoints
//
//	GET  /healthz      liveness probe: {"status":"ok","version":"..."}
//	POST /v1/resolve   resolve a candidate document (see package io)
//
// POST /v1/resolve accepts the query parameters branch_lengths=true and
// refresh=true. The response body is the JSON result (accepted, rejected,
// removed, newick). The X-Run-ID header carries the run id and X-Cache
// reports "hit" or "miss".
//
// # Errors
//
// Failures are returned as {"error": CODE, "message": "..."}. INVALID_INPUT
// and INVALID_FORMAT map to 400, MISSING_DESCENDANTS to 422, anything else
// to 500.
package api
