package mcp

import (
	"context"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/fittrack/internal/models"
)

// wholeNumber reads a numeric argument that must be an integer.
func wholeNumber(req mcp.CallToolRequest, key string) (int, error) {
	f, err := req.RequireFloat(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("argument %q must be a whole number", key)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("argument %q is out of range", key)
	}
	return int(f), nil
}

// finiteNumber reads a numeric argument that must not be NaN or infinite.
func finiteNumber(req mcp.CallToolRequest, key string) (float64, error) {
	f, err := req.RequireFloat(key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("argument %q must be a finite number", key)
	}
	return f, nil
}

// has reports whether the request carries key at all.
func has(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}

// --- Tool definitions ---

var toolAddUser = mcp.NewTool("add_user",
	mcp.WithDescription("Register a new user. Age, weight and height must be positive. Fails if the id is already taken."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Unique user id chosen by the caller")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
	mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years (whole number)")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Body weight")),
	mcp.WithNumber("height", mcp.Required(), mcp.Description("Body height")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Append a workout to a user's log. Duration must be positive; calories burned cannot be negative."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("type", mcp.Required(), mcp.Description("Workout type label (e.g. 'Run', 'Swim')")),
	mcp.WithNumber("duration", mcp.Required(), mcp.Description("Duration in minutes (whole number)")),
	mcp.WithNumber("calories_burned", mcp.Required(), mcp.Description("Calories burned (whole number)")),
	mcp.WithString("date", mcp.Description("When the workout happened (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("All workouts a user has logged, oldest first."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
)

var toolGetWorkoutsByType = mcp.NewTool("get_workouts_by_type",
	mcp.WithDescription("A user's workouts of one type, compared case-insensitively, oldest first. An empty list is not an error."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("type", mcp.Required(), mcp.Description("Workout type to match")),
)

var toolListUsers = mcp.NewTool("list_users",
	mcp.WithDescription("All registered users in registration order."),
)

var toolGetUser = mcp.NewTool("get_user",
	mcp.WithDescription("Look up one user. Returns found=false instead of an error when the id is unknown."),
	mcp.WithString("id", mcp.Required(), mcp.Description("User id")),
)

var toolUpdateUser = mcp.NewTool("update_user",
	mcp.WithDescription("Overwrite any of name, age, weight, height for an existing user. Omitted fields are left unchanged; workouts are never touched."),
	mcp.WithString("id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("name", mcp.Description("New display name")),
	mcp.WithNumber("age", mcp.Description("New age (whole number)")),
	mcp.WithNumber("weight", mcp.Description("New weight")),
	mcp.WithNumber("height", mcp.Description("New height")),
)

// --- Tool handlers ---

func (h *handlers) addUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	age, err := wholeNumber(req, "age")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	weight, err := finiteNumber(req, "weight")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	height, err := finiteNumber(req, "height")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.reg.AddUser(id, name, age, weight, height); err != nil {
		h.log.Warn("mcp add_user", "user_id", id, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("user " + id + " added"), nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	workoutType, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}
	duration, err := wholeNumber(req, "duration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	calories, err := wholeNumber(req, "calories_burned")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	date := h.now()
	if s := req.GetString("date", ""); s != "" {
		date, err = models.ParseWorkoutDate(s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	w := models.Workout{Type: workoutType, Duration: duration, CaloriesBurned: calories, Date: date}
	if err := h.reg.LogWorkout(userID, w); err != nil {
		h.log.Warn("mcp log_workout", "user_id", userID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("workout logged for " + userID), nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}

	workouts, err := h.reg.WorkoutsOf(userID)
	if err != nil {
		h.log.Warn("mcp get_workouts", "user_id", userID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutsByType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	workoutType, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}

	workouts, err := h.reg.WorkoutsByType(userID, workoutType)
	if err != nil {
		h.log.Warn("mcp get_workouts_by_type", "user_id", userID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listUsers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.reg.Users())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// userLookup is the get_user payload. User is omitted when not found.
type userLookup struct {
	Found bool         `json:"found"`
	User  *models.User `json:"user,omitempty"`
}

func (h *handlers) getUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	lookup := userLookup{}
	if u, ok := h.reg.User(id); ok {
		lookup = userLookup{Found: true, User: &u}
	}

	result, err := mcp.NewToolResultJSON(lookup)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) updateUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	var patch models.UserPatch
	if has(req, "name") {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.Name = &name
	}
	if has(req, "age") {
		age, err := wholeNumber(req, "age")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.Age = &age
	}
	if has(req, "weight") {
		weight, err := finiteNumber(req, "weight")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.Weight = &weight
	}
	if has(req, "height") {
		height, err := finiteNumber(req, "height")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.Height = &height
	}

	if err := h.reg.UpdateUser(id, patch); err != nil {
		h.log.Warn("mcp update_user", "user_id", id, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("user " + id + " updated"), nil
}
