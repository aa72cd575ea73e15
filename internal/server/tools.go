package server

import "github.com/ironsheep/texture-lab-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// adjustmentProperties builds the texture_adjust schema from the
// adjustment ranges so the two cannot drift apart.
func adjustmentProperties() map[string]interface{} {
	descriptions := map[string]string{
		"brightness": "Brightness percent (100 = unchanged)",
		"contrast":   "Contrast percent (100 = unchanged)",
		"saturation": "Saturation percent (100 = unchanged, 0 = greyscale)",
		"hue":        "Hue rotation in degrees",
		"sepia":      "Warmth as sepia percent",
		"blur":       "Gaussian blur radius in pixels",
		"sharpen":    "Sharpen kernel strength",
		"invert":     "Invert colours: 0 or 100",
		"red":        "Red channel gain percent (100 = unchanged)",
		"green":      "Green channel gain percent (100 = unchanged)",
		"blue":       "Blue channel gain percent (100 = unchanged)",
	}
	props := make(map[string]interface{}, len(imaging.AdjustmentRanges))
	for _, r := range imaging.AdjustmentRanges {
		props[r.Name] = map[string]interface{}{
			"type":        "number",
			"description": descriptions[r.Name],
			"minimum":     r.Min,
			"maximum":     r.Max,
			"default":     r.Identity,
		}
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "texture_load",
			Description: "Load an image as the texture being edited. Resets all adjustments and tiling. Accepts a file path or base64 image data (PNG, JPEG, GIF, BMP or WebP).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 image data or a data URL, used when path is omitted",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Display name for base64 uploads",
					},
				},
			},
		},
		{
			Name:        "texture_info",
			Description: "Return the loaded image, the current adjustments, the tiling arrangement and the viewport.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Filter Composer
		{
			Name:        "texture_adjust",
			Description: "Change one or more adjustments. Omitted fields keep their current value; values are clamped to their range.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": adjustmentProperties(),
			},
		},
		{
			Name:        "texture_reset",
			Description: "Restore every adjustment to its default, reproducing the source exactly.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Tile Compositor
		{
			Name:        "texture_set_tiling",
			Description: "Turn the 2x2 tiled preview on or off and choose how seams are repaired.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled": map[string]interface{}{
						"type":        "boolean",
						"description": "Show the texture as a 2x2 grid",
					},
					"seam_repair": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "mirror", "seamless"},
						"description": "none: plain repeat; mirror: flip alternate tiles; seamless: cross-fade the edges (crops 15% of each dimension)",
					},
				},
			},
		},
		{
			Name:        "texture_render",
			Description: "Render the texture with the current adjustments and tiling and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"viewport_width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of the display area the render is fitted into, at most 4096. Omit for native size",
						"minimum":     0,
						"maximum":     maxViewportSize,
					},
					"viewport_height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the display area the render is fitted into, at most 4096. Omit for native size",
						"minimum":     0,
						"maximum":     maxViewportSize,
					},
				},
			},
		},
		{
			Name:        "texture_seam_report",
			Description: "Measure the colour step across every tile boundary of the current render, including the wrap-around edges. Ratios near 1 mean the seams are invisible.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "texture_compare",
			Description: "Return the unedited and adjusted images side by side. Only available with tiling off.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Color Sampler
		{
			Name:        "texture_pick_color",
			Description: "Sample the source colour under a point of the current render and white-balance the image so that colour becomes neutral grey. Sets the red, green and blue gains.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X coordinate on the rendered canvas",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y coordinate on the rendered canvas",
					},
				},
				"required": []string{"x", "y"},
			},
		},

		// Export
		{
			Name:        "texture_export",
			Description: "Encode the current render for download as lumina-texture-YYYY-MM-DD. Writes to output_path when given, otherwise returns base64 data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "File or directory to write the export to",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "bmp"},
						"description": "Image format. Default png",
						"default":     "png",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
