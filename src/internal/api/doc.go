// Package api serves the merged hosts document over HTTP.
//
// Every request to /hosts runs a fresh merge of the configured sources, so
// the response always reflects the files on disk. Merges are serialized.
//
// # Endpoints
//
//   - GET /hosts: the merged document (text/plain)
//   - GET /api/v1/summary: per-source counters of a merge (JSON)
//   - GET /health: liveness probe
//   - GET /metrics: Prometheus metrics
//
// # Response Format
//
// JSON responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "merge_failed",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
package api
