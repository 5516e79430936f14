package shell

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/meltforce/fittrack/internal/models"
)

const dateLayout = "2006-01-02 15:04"

// renderWorkouts prints workouts as an aligned table, with each date
// followed by its age relative to the shell clock.
func (s *Shell) renderWorkouts(ws []models.Workout) {
	if len(ws) == 0 {
		fmt.Fprintln(s.out, "No workouts found.")
		return
	}

	now := s.now()
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tDURATION\tCALORIES\tDATE")
	for i, w := range ws {
		fmt.Fprintf(tw, "%d\t%s\t%d min\t%d\t%s (%s)\n",
			i+1, w.Type, w.Duration, w.CaloriesBurned,
			w.Date.Format(dateLayout), humanize.RelTime(w.Date, now, "ago", "from now"))
	}
	tw.Flush()
}

func (s *Shell) renderJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}
