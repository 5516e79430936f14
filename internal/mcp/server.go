package mcp

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(reg Registry, name, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions("Fitness tracker. Register users, log their workouts, and query workout history. Data lives in memory for the lifetime of this process."),
	)

	h := &handlers{reg: reg, log: log, now: time.Now}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolAddUser, Handler: h.addUser},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkoutsByType, Handler: h.getWorkoutsByType},
		server.ServerTool{Tool: toolListUsers, Handler: h.listUsers},
		server.ServerTool{Tool: toolGetUser, Handler: h.getUser},
		server.ServerTool{Tool: toolUpdateUser, Handler: h.updateUser},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resUsers, Handler: h.usersResource},
	)

	return s
}

// Serve runs s over the given stdio streams until ctx is cancelled or the
// input closes. Transport errors go to log.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, log *slog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(log.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	reg Registry
	log *slog.Logger
	now func() time.Time
}

// --- Resource definitions ---

var resUsers = mcp.NewResource(
	"fittrack://users",
	"Users",
	mcp.WithResourceDescription("All registered users with their workout logs, in registration order"),
	mcp.WithMIMEType("application/json"),
)
