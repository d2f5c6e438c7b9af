package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eytandecker/theatre-mcp/internal/coords"
	"github.com/eytandecker/theatre-mcp/internal/planar"
	"github.com/eytandecker/theatre-mcp/internal/theatre"
	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// ErrInvalidArgument is returned for tool arguments that fail validation.
var ErrInvalidArgument = errors.New("mcp: invalid argument")

// Converter is the subset of coords.Converter used by the MCP server.
type Converter interface {
	ConvertBullseye(x, y float64, theatreID string) (types.GeoCoordinate, error)
	ConvertWaypoint(x, y float64, theatreID string) (types.GeoCoordinate, error)
	ConvertRoute(theatreID string, points []coords.RoutePoint) ([]coords.ConvertedPoint, error)
}

// Theatres is the subset of theatre.Registry used by the MCP server.
type Theatres interface {
	Names() []string
	Lookup(id string) (theatre.Parameters, error)
}

// Options holds server identity and tool defaults.
type Options struct {
	Name           string
	Version        string
	DefaultTheatre string
	MaxRoutePoints int
}

// Server wraps the MCP SDK server and exposes coordinate conversion as tools.
type Server struct {
	sdk      *mcpsdk.Server
	conv     Converter
	theatres Theatres
	opts     Options
}

// NewServer creates a Server and registers its tools.
func NewServer(conv Converter, theatres Theatres, opts Options) *Server {
	s := &Server{
		sdk: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    opts.Name,
			Version: opts.Version,
		}, nil),
		conv:     conv,
		theatres: theatres,
		opts:     opts,
	}

	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "list_theatres",
		Description: "Lists the supported theatres and their transverse Mercator parameters.",
	}, s.handleListTheatres)
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "convert_coordinate",
		Description: "Converts a mission x/y point in a theatre to latitude/longitude in decimal and DMS form.",
	}, s.handleConvertCoordinate)
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "offset_point",
		Description: "Moves a mission x/y point by a bearing (0 = +x, counter-clockwise) and distance in meters, converting the result when a theatre is given or configured as default.",
	}, s.handleOffsetPoint)
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "convert_route",
		Description: "Converts a list of mission x/y points in one theatre into a GeoJSON FeatureCollection.",
	}, s.handleConvertRoute)
	return s
}

// Run starts the MCP server over stdio and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.sdk.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect connects the server to an existing transport (used in tests).
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.sdk.Connect(ctx, t, nil)
}

// TheatreInfo describes one theatre in the list_theatres response.
type TheatreInfo struct {
	Name string `json:"name"`
	theatre.Parameters
}

// TheatresResponse is the JSON payload of list_theatres.
type TheatresResponse struct {
	Theatres       []TheatreInfo `json:"theatres"`
	DefaultTheatre string        `json:"default_theatre,omitempty"`
}

// convertInput holds arguments for the convert_coordinate tool.
type convertInput struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Theatre string  `json:"theatre,omitempty"`
	Kind    string  `json:"kind,omitempty"`
}

// CoordinateResponse is the JSON payload of a successful conversion.
type CoordinateResponse struct {
	Theatre string `json:"theatre"`
	Kind    string `json:"kind"`
	types.GeoCoordinate
	Formatted string `json:"formatted"`
	Timestamp string `json:"timestamp"`
}

// offsetInput holds arguments for the offset_point tool.
type offsetInput struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	BearingDeg float64 `json:"bearing_deg"`
	Distance   float64 `json:"distance"`
	Theatre    string  `json:"theatre,omitempty"`
}

// OffsetResponse is the JSON payload of offset_point. Coordinate is present
// only when a theatre was supplied.
type OffsetResponse struct {
	X          float64              `json:"x"`
	Y          float64              `json:"y"`
	Theatre    string               `json:"theatre,omitempty"`
	Coordinate *types.GeoCoordinate `json:"coordinate,omitempty"`
	Formatted  string               `json:"formatted,omitempty"`
}

type routePointInput struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name,omitempty"`
}

// routeInput holds arguments for the convert_route tool.
type routeInput struct {
	Theatre string            `json:"theatre,omitempty"`
	Points  []routePointInput `json:"points"`
}

// ErrorResponse is returned when a tool call cannot be served.
type ErrorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code"`
	Recoverable bool   `json:"recoverable"`
	Suggestion  string `json:"suggestion"`
	Timestamp   string `json:"timestamp"`
}

func (s *Server) handleListTheatres(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input struct{},
) (*mcpsdk.CallToolResult, any, error) {
	resp := TheatresResponse{DefaultTheatre: s.opts.DefaultTheatre}
	for _, name := range s.theatres.Names() {
		p, err := s.theatres.Lookup(name)
		if err != nil {
			return s.errorResult(err), nil, nil
		}
		resp.Theatres = append(resp.Theatres, TheatreInfo{Name: name, Parameters: p})
	}
	return jsonResult(resp)
}

func (s *Server) handleConvertCoordinate(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input convertInput,
) (*mcpsdk.CallToolResult, any, error) {
	id, err := s.theatre(input.Theatre)
	if err != nil {
		return s.errorResult(err), nil, nil
	}

	var coord types.GeoCoordinate
	kind := strings.ToLower(input.Kind)
	switch kind {
	case "bullseye":
		coord, err = s.conv.ConvertBullseye(input.X, input.Y, id)
	case "", "waypoint":
		kind = "waypoint"
		coord, err = s.conv.ConvertWaypoint(input.X, input.Y, id)
	default:
		err = fmt.Errorf("%w: kind %q must be bullseye or waypoint", ErrInvalidArgument, input.Kind)
	}
	if err != nil {
		return s.errorResult(err), nil, nil
	}

	return jsonResult(CoordinateResponse{
		Theatre:       id,
		Kind:          kind,
		GeoCoordinate: coord,
		Formatted:     coords.Format(coord),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleOffsetPoint(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input offsetInput,
) (*mcpsdk.CallToolResult, any, error) {
	x, y := planar.Offset(input.X, input.Y, input.BearingDeg, input.Distance)
	resp := OffsetResponse{X: x, Y: y}

	// Without a theatre or a default the planar result stands alone.
	if id, err := s.theatre(input.Theatre); err == nil {
		coord, err := s.conv.ConvertWaypoint(x, y, id)
		if err != nil {
			return s.errorResult(err), nil, nil
		}
		resp.Theatre = id
		resp.Coordinate = &coord
		resp.Formatted = coords.Format(coord)
	}
	return jsonResult(resp)
}

func (s *Server) handleConvertRoute(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input routeInput,
) (*mcpsdk.CallToolResult, any, error) {
	id, err := s.theatre(input.Theatre)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	if len(input.Points) == 0 {
		return s.errorResult(fmt.Errorf("%w: points must not be empty", ErrInvalidArgument)), nil, nil
	}
	if s.opts.MaxRoutePoints > 0 && len(input.Points) > s.opts.MaxRoutePoints {
		return s.errorResult(fmt.Errorf("%w: %d points exceeds the limit of %d",
			ErrInvalidArgument, len(input.Points), s.opts.MaxRoutePoints)), nil, nil
	}

	points := make([]coords.RoutePoint, len(input.Points))
	for i, p := range input.Points {
		points[i] = coords.RoutePoint{Name: p.Name, Point: types.PlanarPoint{X: p.X, Y: p.Y}}
	}
	converted, err := s.conv.ConvertRoute(id, points)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	return jsonResult(coords.RouteFeatureCollection(id, converted))
}

// theatre resolves an optional theatre argument against the configured default.
func (s *Server) theatre(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if s.opts.DefaultTheatre != "" {
		return s.opts.DefaultTheatre, nil
	}
	return "", fmt.Errorf("%w: theatre is required", ErrInvalidArgument)
}

func jsonResult(v any) (*mcpsdk.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil, nil
}

func (s *Server) errorResult(err error) *mcpsdk.CallToolResult {
	resp := ErrorResponse{
		Error:     err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch {
	case errors.Is(err, types.ErrUnknownTheatre):
		resp.Code = "UNKNOWN_THEATRE"
		resp.Recoverable = true
		resp.Suggestion = "Use one of: " + strings.Join(s.theatres.Names(), ", ") + "."
	case errors.Is(err, types.ErrOutOfDomain):
		resp.Code = "OUT_OF_DOMAIN"
		resp.Recoverable = true
		resp.Suggestion = "Check that the point belongs to the given theatre."
	case errors.Is(err, ErrInvalidArgument):
		resp.Code = "INVALID_ARGUMENT"
		resp.Recoverable = true
		resp.Suggestion = "Fix the tool arguments and retry."
	case errors.Is(err, types.ErrProjectionInit):
		resp.Code = "PROJECTION_INIT_FAILED"
		resp.Recoverable = false
		resp.Suggestion = "Check application logs for details."
	default:
		resp.Code = "UNKNOWN_ERROR"
		resp.Recoverable = false
		resp.Suggestion = "Check application logs for details."
	}

	data, _ := json.Marshal(resp)
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
		IsError: true,
	}
}
