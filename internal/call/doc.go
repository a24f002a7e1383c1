// SPDX-License-Identifier: MPL-2.0

// Package call implements the request marshalling and result normalization
// pipeline: CLI text is coerced into typed call arguments, dispatched as one
// API operation, and the result is projected into renderable output (JSON,
// streamed JSON lines, or Markdown).
package call
