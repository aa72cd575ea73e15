package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/texture-lab-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "texture_load", "texture_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000,
// except out-of-range arguments, which return -32602.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		if errors.Is(err, imaging.ErrDecodeFailure) {
			log.Printf("Image could not be decoded, session reset: %v", err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Updates or reads the editing session
//  4. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session
	case "texture_load":
		return s.handleTextureLoad(args)
	case "texture_info":
		return s.session.State(), nil

	// Filter Composer
	case "texture_adjust":
		return s.handleTextureAdjust(args)
	case "texture_reset":
		return s.session.Reset(), nil

	// Tile Compositor
	case "texture_set_tiling":
		return s.handleTextureSetTiling(args)
	case "texture_render":
		return s.handleTextureRender(ctx, args)
	case "texture_seam_report":
		return s.handleTextureSeamReport(ctx)
	case "texture_compare":
		return s.handleTextureCompare(ctx)

	// Color Sampler
	case "texture_pick_color":
		return s.handleTexturePickColor(ctx, args)

	// Export
	case "texture_export":
		return s.handleTextureExport(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Session Handlers ===

type textureLoadArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
	Name        string `json:"name"`
}

func (s *Server) handleTextureLoad(args json.RawMessage) (interface{}, error) {
	var a textureLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var src *imaging.Source
	switch {
	case a.Path != "":
		var err error
		if src, err = imaging.ReadSource(a.Path); err != nil {
			return nil, err
		}
	case a.ImageBase64 != "":
		data, err := decodeBase64Image(a.ImageBase64)
		if err != nil {
			return nil, err
		}
		name := a.Name
		if name == "" {
			name = "upload"
		}
		src = imaging.NewSource(name, data)
	default:
		return nil, fmt.Errorf("either path or image_base64 is required")
	}

	return s.session.Load(src)
}

// decodeBase64Image accepts plain base64 or a data URL.
func decodeBase64Image(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		s = s[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, nil
}

// === Filter Composer Handlers ===

// textureAdjustArgs holds a partial update; omitted fields keep their value.
type textureAdjustArgs struct {
	Brightness *float64 `json:"brightness"`
	Contrast   *float64 `json:"contrast"`
	Saturation *float64 `json:"saturation"`
	Hue        *float64 `json:"hue"`
	Sepia      *float64 `json:"sepia"`
	Blur       *float64 `json:"blur"`
	Sharpen    *float64 `json:"sharpen"`
	Invert     *float64 `json:"invert"`
	Red        *float64 `json:"red"`
	Green      *float64 `json:"green"`
	Blue       *float64 `json:"blue"`
}

func (a textureAdjustArgs) apply(cur imaging.Adjustments) imaging.Adjustments {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cur.Brightness, a.Brightness)
	set(&cur.Contrast, a.Contrast)
	set(&cur.Saturation, a.Saturation)
	set(&cur.Hue, a.Hue)
	set(&cur.Sepia, a.Sepia)
	set(&cur.Blur, a.Blur)
	set(&cur.Sharpen, a.Sharpen)
	set(&cur.Invert, a.Invert)
	set(&cur.Red, a.Red)
	set(&cur.Green, a.Green)
	set(&cur.Blue, a.Blue)
	return cur
}

func (s *Server) handleTextureAdjust(args json.RawMessage) (interface{}, error) {
	var a textureAdjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.session.UpdateAdjustments(a.apply), nil
}

// === Tile Compositor Handlers ===

type textureSetTilingArgs struct {
	Enabled    *bool   `json:"enabled"`
	SeamRepair *string `json:"seam_repair"`
}

func (s *Server) handleTextureSetTiling(args json.RawMessage) (interface{}, error) {
	var a textureSetTilingArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg := s.session.State().Tiling
	if a.Enabled != nil {
		cfg.Enabled = *a.Enabled
	}
	if a.SeamRepair != nil {
		mode, err := imaging.ParseSeamRepair(*a.SeamRepair)
		if err != nil {
			return nil, err
		}
		cfg.Repair = mode
	}
	return s.session.SetTiling(cfg), nil
}

// maxViewportSize bounds each viewport dimension. A tiled canvas is at most
// this size per side.
const maxViewportSize = 4096

// errInvalidArguments marks tool arguments that parsed but are out of range.
var errInvalidArguments = errors.New("invalid arguments")

type textureRenderArgs struct {
	ViewportWidth  int `json:"viewport_width"`
	ViewportHeight int `json:"viewport_height"`
}

func (s *Server) handleTextureRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a textureRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ViewportWidth < 0 || a.ViewportHeight < 0 {
		return nil, fmt.Errorf("%w: viewport dimensions must not be negative", errInvalidArguments)
	}
	if a.ViewportWidth > maxViewportSize || a.ViewportHeight > maxViewportSize {
		return nil, fmt.Errorf("%w: viewport dimensions must not exceed %d", errInvalidArguments, maxViewportSize)
	}
	s.session.SetViewport(imaging.Viewport{Width: a.ViewportWidth, Height: a.ViewportHeight})

	frame, err := s.session.Frame(ctx)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(frame)
}

func (s *Server) handleTextureSeamReport(ctx context.Context) (interface{}, error) {
	frame, err := s.session.Frame(ctx)
	if err != nil {
		return nil, err
	}
	return imaging.MeasureSeams(frame.Image, frame.TileWidth, frame.TileHeight), nil
}

// compareResult holds the unedited and adjusted renders side by side.
type compareResult struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	OriginalBase64 string `json:"original_base64"`
	AdjustedBase64 string `json:"adjusted_base64"`
	MimeType       string `json:"mime_type"`
}

func (s *Server) handleTextureCompare(ctx context.Context) (interface{}, error) {
	if s.session.State().Tiling.Enabled {
		return nil, fmt.Errorf("comparison is only available with tiling off")
	}
	frame, err := s.session.Frame(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.session.Original()
	if err != nil {
		return nil, err
	}

	before, err := imaging.EncodeImage(imaging.CompareView(raw, frame), imaging.FormatPNG)
	if err != nil {
		return nil, err
	}
	after, err := imaging.EncodeImage(frame.Image, imaging.FormatPNG)
	if err != nil {
		return nil, err
	}
	return &compareResult{
		Width:          frame.Width(),
		Height:         frame.Height(),
		OriginalBase64: base64.StdEncoding.EncodeToString(before),
		AdjustedBase64: base64.StdEncoding.EncodeToString(after),
		MimeType:       imaging.FormatPNG.MimeType(),
	}, nil
}

// === Color Sampler Handlers ===

type texturePickColorArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// pickColorResult reports whether a sample was emitted.
type pickColorResult struct {
	Sampled     bool                 `json:"sampled"`
	Color       *imaging.ColorResult `json:"color,omitempty"`
	Gain        *imaging.ChannelGain `json:"gain,omitempty"`
	Adjustments *imaging.Adjustments `json:"adjustments,omitempty"`
	Reason      string               `json:"reason,omitempty"`
}

func (s *Server) handleTexturePickColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a texturePickColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.session.Pick(ctx, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &pickColorResult{Reason: "coordinate is outside the image"}, nil
	}
	return &pickColorResult{
		Sampled:     true,
		Color:       res.Color,
		Gain:        &res.Gain,
		Adjustments: &res.Adjustments,
	}, nil
}

// === Export Handlers ===

type textureExportArgs struct {
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
}

func (s *Server) handleTextureExport(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a textureExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	format, err := imaging.ParseExportFormat(a.Format)
	if err != nil {
		return nil, err
	}

	res, data, err := s.session.Export(ctx, format)
	if err != nil {
		return nil, err
	}

	if a.OutputPath == "" {
		res.ImageBase64 = base64.StdEncoding.EncodeToString(data)
		return res, nil
	}

	path := a.OutputPath
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, res.Filename)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}
	res.Path = path
	return res, nil
}
