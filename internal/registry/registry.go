// Package registry holds users and their workout logs in memory.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/meltforce/fittrack/internal/models"
)

// Registry is the in-memory store of users and workouts. Users enumerate in
// insertion order. Safe for concurrent use; every value handed out is a copy.
type Registry struct {
	mu       sync.RWMutex
	users    *orderedmap.OrderedMap[string, *models.User]
	validate *validator.Validate
	log      *slog.Logger
}

// New creates an empty Registry.
func New(log *slog.Logger) *Registry {
	return &Registry{
		users:    orderedmap.New[string, *models.User](),
		validate: newValidator(),
		log:      log,
	}
}

// AddUser registers a new user with an empty workout log.
// The id is checked for uniqueness before the attributes are validated.
func (r *Registry) AddUser(id, name string, age int, weight, height float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users.Get(id); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateUser, id)
	}

	u := &models.User{
		ID:       id,
		Name:     name,
		Age:      age,
		Weight:   weight,
		Height:   height,
		Workouts: []models.Workout{},
	}
	if err := r.check(u, ErrInvalidAttribute); err != nil {
		return err
	}

	r.users.Set(id, u)
	r.log.Debug("user added", "user_id", id)
	return nil
}

// LogWorkout appends w to the user's workout log.
func (r *Registry) LogWorkout(userID string, w models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users.Get(userID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err := r.check(w, ErrInvalidWorkout); err != nil {
		return err
	}

	u.Workouts = append(u.Workouts, w)
	r.log.Debug("workout logged", "user_id", userID, "type", w.Type, "count", len(u.Workouts))
	return nil
}

// WorkoutsOf returns every workout the user has logged, oldest first.
func (r *Registry) WorkoutsOf(userID string) ([]models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users.Get(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return u.Clone().Workouts, nil
}

// WorkoutsByType returns the user's workouts whose type matches workoutType
// ignoring case, in log order. No match yields an empty slice, not an error.
func (r *Registry) WorkoutsByType(userID, workoutType string) ([]models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users.Get(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	result := make([]models.Workout, 0)
	for _, w := range u.Workouts {
		if w.IsType(workoutType) {
			result = append(result, w)
		}
	}
	return result, nil
}

// Users returns all users in the order they were added.
func (r *Registry) Users() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.User, 0, r.users.Len())
	for pair := r.users.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value.Clone())
	}
	return result
}

// User looks up a single user. A missing id is reported through ok, never as an error.
func (r *Registry) User(id string) (u models.User, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users.Get(id)
	if !ok {
		return models.User{}, false
	}
	return stored.Clone(), true
}

// UpdateUser overwrites the fields present in patch. Values are not
// validated here, so a non-positive age, weight or height is accepted.
func (r *Registry) UpdateUser(id string, patch models.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}

	patch.Apply(u)
	r.log.Debug("user updated", "user_id", id)
	return nil
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users.Len()
}
