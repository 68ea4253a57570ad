// Package client implements the HTTP API client layer: the single choke
// point through which every backend call travels.
//
// Responsibilities:
//   - build requests against the configured API base URL;
//   - attach the persisted bearer token (read-only) when one exists;
//   - pick the content type: JSON for plain payloads, the multipart
//     writer's own type (boundary included) for form payloads;
//   - decode every response into the uniform Envelope.
//
// The layer never converts an application-level failure (success=false)
// into a Go error; only network failures and malformed JSON reject.
package client
