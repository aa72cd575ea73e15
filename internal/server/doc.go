// Package server implements the MCP (Model Context Protocol) server for the
// texture editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one texture
// editing session through the MCP protocol. A client loads an image, adjusts
// it, previews it as a tiled surface and exports the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - texture_load: Load an image from a path or base64 data
//   - texture_info: Report the session state
//
// Filter Composer:
//   - texture_adjust: Change adjustment values
//   - texture_reset: Restore the defaults
//
// Tile Compositor:
//   - texture_set_tiling: Toggle the 2x2 preview and choose the seam repair
//   - texture_render: Render the current state as PNG
//   - texture_seam_report: Measure colour steps across tile boundaries
//   - texture_compare: Unedited and adjusted images side by side
//
// Color Sampler:
//   - texture_pick_color: Sample a colour and white-balance to it
//
// Export:
//   - texture_export: Encode the render as lumina-texture-YYYY-MM-DD
//
// # Session State
//
// The server holds a single session for the lifetime of the process. Loading
// a new image resets the adjustments and tiling. If the stored image can no
// longer be decoded the session is reset to empty and the failure is logged.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A colour pick outside the image is not an error; the result reports
// "sampled": false and nothing changes.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
