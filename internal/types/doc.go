// Package types provides the data structures of the agent tool surface.
//
// Core Types:
//   - Service: a named group of tools
//   - Tool, Parameter: tool specification shown to the agent
//   - Result: tagged success/failure outcome of one tool call
package types
