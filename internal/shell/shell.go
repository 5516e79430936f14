// Package shell is the interactive menu front end for the registry.
// It reads answers line by line, converts them to typed values, and reports
// registry errors without ending the session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/registry"
)

// Shell drives a Registry from a line-oriented reader and writer.
type Shell struct {
	reg     *registry.Registry
	in      *bufio.Scanner
	out     io.Writer
	log     *slog.Logger
	now     func() time.Time
	newID   func() string
	prompts bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock sets the clock used to date newly logged workouts.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// WithPrompts turns the menu and field prompts on or off. Results and
// errors are always written.
func WithPrompts(on bool) Option {
	return func(s *Shell) { s.prompts = on }
}

// WithIDGenerator sets the generator used when a new user's id is left blank.
func WithIDGenerator(gen func() string) Option {
	return func(s *Shell) { s.newID = gen }
}

// New creates a Shell reading answers from in and writing output to out.
func New(reg *registry.Registry, in io.Reader, out io.Writer, log *slog.Logger, opts ...Option) *Shell {
	s := &Shell{
		reg:     reg,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
		prompts: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var menu = []string{
	"1. Add User",
	"2. Log Workout",
	"3. Get All Workouts",
	"4. Get Workouts By Type",
	"5. Get Users",
	"6. Get User Details",
	"7. Update User",
	"8. Exit",
}

// Run loops over menu choices until Exit is chosen, the input ends, or ctx
// is cancelled. End of input is a normal exit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.prompts {
			fmt.Fprintln(s.out, "\nFitness Tracker")
			for _, item := range menu {
				fmt.Fprintln(s.out, item)
			}
		}

		choice, err := s.ask("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.addUser()
		case "2":
			err = s.logWorkout()
		case "3":
			err = s.workoutsOf()
		case "4":
			err = s.workoutsByType()
		case "5":
			err = s.users()
		case "6":
			err = s.userDetails()
		case "7":
			err = s.updateUser()
		case "8":
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.report(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("reading input: %w", err)
}

func (s *Shell) report(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
	s.log.Warn("operation failed", "error", err)
}

// ask prints prompt (when enabled) and returns the next input line.
// It returns io.EOF once the input is exhausted.
func (s *Shell) ask(prompt string) (string, error) {
	if s.prompts {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// askAll collects one answer per prompt before any of them is parsed, so a
// bad value never leaves later answers to be read as menu choices.
func (s *Shell) askAll(prompts ...string) ([]string, error) {
	answers := make([]string, 0, len(prompts))
	for _, p := range prompts {
		a, err := s.ask(p)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func parseInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected a whole number", field, raw)
	}
	return n, nil
}

func parseFloat(field, raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q: expected a number", field, raw)
	}
	return f, nil
}

func (s *Shell) addUser() error {
	a, err := s.askAll(
		"Enter User ID (leave blank to generate): ",
		"Enter Name: ",
		"Enter Age: ",
		"Enter Weight: ",
		"Enter Height: ",
	)
	if err != nil {
		return err
	}

	age, err := parseInt("age", a[2])
	if err != nil {
		return err
	}
	weight, err := parseFloat("weight", a[3])
	if err != nil {
		return err
	}
	height, err := parseFloat("height", a[4])
	if err != nil {
		return err
	}

	id := strings.TrimSpace(a[0])
	generated := id == ""
	if generated {
		id = s.newID()
	}

	if err := s.reg.AddUser(id, a[1], age, weight, height); err != nil {
		return err
	}
	if generated {
		fmt.Fprintf(s.out, "Generated User ID: %s\n", id)
	}
	fmt.Fprintln(s.out, "User added successfully!")
	return nil
}

func (s *Shell) logWorkout() error {
	a, err := s.askAll(
		"Enter User ID: ",
		"Enter Workout Type: ",
		"Enter Duration (minutes): ",
		"Enter Calories Burned: ",
	)
	if err != nil {
		return err
	}

	duration, err := parseInt("duration", a[2])
	if err != nil {
		return err
	}
	calories, err := parseInt("calories burned", a[3])
	if err != nil {
		return err
	}

	w := models.Workout{
		Type:           a[1],
		Duration:       duration,
		CaloriesBurned: calories,
		Date:           s.now(),
	}
	if err := s.reg.LogWorkout(strings.TrimSpace(a[0]), w); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Workout logged successfully!")
	return nil
}

func (s *Shell) workoutsOf() error {
	id, err := s.ask("Enter User ID: ")
	if err != nil {
		return err
	}
	ws, err := s.reg.WorkoutsOf(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	s.renderWorkouts(ws)
	return nil
}

func (s *Shell) workoutsByType() error {
	a, err := s.askAll("Enter User ID: ", "Enter Workout Type: ")
	if err != nil {
		return err
	}
	ws, err := s.reg.WorkoutsByType(strings.TrimSpace(a[0]), a[1])
	if err != nil {
		return err
	}
	s.renderWorkouts(ws)
	return nil
}

func (s *Shell) users() error {
	return s.renderJSON(s.reg.Users())
}

func (s *Shell) userDetails() error {
	id, err := s.ask("Enter User ID: ")
	if err != nil {
		return err
	}
	u, ok := s.reg.User(strings.TrimSpace(id))
	if !ok {
		fmt.Fprintln(s.out, "User not found.")
		return nil
	}
	return s.renderJSON(u)
}

func (s *Shell) updateUser() error {
	a, err := s.askAll(
		"Enter User ID: ",
		"Enter New Name (leave blank to skip): ",
		"Enter New Age (leave blank to skip): ",
		"Enter New Weight (leave blank to skip): ",
		"Enter New Height (leave blank to skip): ",
	)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if strings.TrimSpace(a[1]) != "" {
		name := a[1]
		patch.Name = &name
	}
	if strings.TrimSpace(a[2]) != "" {
		age, err := parseInt("age", a[2])
		if err != nil {
			return err
		}
		patch.Age = &age
	}
	if strings.TrimSpace(a[3]) != "" {
		weight, err := parseFloat("weight", a[3])
		if err != nil {
			return err
		}
		patch.Weight = &weight
	}
	if strings.TrimSpace(a[4]) != "" {
		height, err := parseFloat("height", a[4])
		if err != nil {
			return err
		}
		patch.Height = &height
	}

	if err := s.reg.UpdateUser(strings.TrimSpace(a[0]), patch); err != nil {
		return err
	}
	if patch.Empty() {
		fmt.Fprintln(s.out, "Nothing to update.")
		return nil
	}
	fmt.Fprintln(s.out, "User updated successfully!")
	return nil
}
