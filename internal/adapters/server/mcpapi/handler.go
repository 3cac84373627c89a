// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hylla/lanes/internal/adapters/server/common"
	"github.com/hylla/lanes/internal/domain"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// defaultActivityLimit bounds activity tool calls that omit a limit.
const defaultActivityLimit = 25

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter with board tools and an
// optional activity tool.
func NewHandler(cfg Config, board common.BoardService, activity common.ActivityService) (*Handler, error) {
	if board == nil {
		return nil, fmt.Errorf("board service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerBoardTools(mcpSrv, board)
	if activity != nil {
		registerActivityTool(mcpSrv, activity)
	}

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "lanes"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// laneNames lists the accepted lane arguments.
func laneNames() []string {
	lanes := domain.Lanes()
	out := make([]string, 0, len(lanes))
	for _, lane := range lanes {
		out = append(out, string(lane))
	}
	return out
}

// registerBoardTools registers the list, create, and move tools.
func registerBoardTools(srv *mcpserver.MCPServer, board common.BoardService) {
	srv.AddTool(
		mcp.NewTool(
			"lanes.list_items",
			mcp.WithDescription("List board items in creation order, optionally for one lane."),
			mcp.WithString("lane", mcp.Description("Lane filter"), mcp.Enum(laneNames()...)),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			items, err := board.ListItems(ctx, common.ListItemsRequest{
				Lane: req.GetString("lane", ""),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"items": items,
			})
			if err != nil {
				return nil, fmt.Errorf("encode list_items result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"lanes.create_item",
			mcp.WithDescription("Create one item in the active lane."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Item title, at least 2 characters")),
			mcp.WithString("description", mcp.Required(), mcp.Description("Item description, at least 5 characters")),
			mcp.WithNumber("people", mcp.Required(), mcp.Description("Assigned people, 1 to 5")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := req.RequireString("title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			description, err := req.RequireString("description")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			people, err := req.RequireInt("people")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			item, err := board.CreateItem(ctx, common.CreateItemRequest{
				Title:       title,
				Description: description,
				People:      people,
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(item)
			if err != nil {
				return nil, fmt.Errorf("encode create_item result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"lanes.move_item",
			mcp.WithDescription("Move one item to a lane. Moving to the current lane reports moved=false."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Item identifier")),
			mcp.WithString("lane", mcp.Required(), mcp.Description("Destination lane"), mcp.Enum(laneNames()...)),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			lane, err := req.RequireString("lane")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			moved, err := board.MoveItem(ctx, common.MoveItemRequest{ID: id, Lane: lane})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(moved)
			if err != nil {
				return nil, fmt.Errorf("encode move_item result: %w", err)
			}
			return result, nil
		},
	)
}

// registerActivityTool registers the `lanes.activity` tool.
func registerActivityTool(srv *mcpserver.MCPServer, activity common.ActivityService) {
	srv.AddTool(
		mcp.NewTool(
			"lanes.activity",
			mcp.WithDescription("List recorded board changes, newest first."),
			mcp.WithNumber("limit", mcp.Description("Maximum rows to return")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			events, err := activity.ListActivity(ctx, common.ListActivityRequest{
				Limit: req.GetInt("limit", defaultActivityLimit),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"events": events,
			})
			if err != nil {
				return nil, fmt.Errorf("encode activity result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrInvalidRequest):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, common.ErrActivityUnavailable):
		return mcp.NewToolResultError("not_implemented: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
