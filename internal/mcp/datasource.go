package mcp

import (
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/registry"
)

// Registry is the set of registry operations exposed as MCP tools.
type Registry interface {
	AddUser(id, name string, age int, weight, height float64) error
	LogWorkout(userID string, w models.Workout) error
	WorkoutsOf(userID string) ([]models.Workout, error)
	WorkoutsByType(userID, workoutType string) ([]models.Workout, error)
	Users() []models.User
	User(id string) (models.User, bool)
	UpdateUser(id string, patch models.UserPatch) error
}

// Compile-time check: *registry.Registry satisfies Registry.
var _ Registry = (*registry.Registry)(nil)
