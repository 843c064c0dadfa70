package cli

import (
	"fmt"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/Brati10/fitness-tracker/internal/session"
)

func (r *Runner) printHelp() {
	fmt.Fprint(r.out, `commands:
  start [name]                        begin an empty session
  template <id>                       begin a session from a template
  add <exercise>                      add an exercise (name or id)
  status                              show the current session
  set <ex> <set> <field> <value>      edit weight/reps/duration/distance
  done <ex> <set>                     toggle set completion (starts rest)
  addset <ex> / dropset <ex>          append or drop a set
  move <from> <to>                    reorder exercises
  remove <ex>                         remove an exercise
  comment <ex> [text]                 set or clear an exercise note
  rest [+N|-N|skip]                   show or adjust the rest timer
  finish                              save the workout and end the session
  save-template <name>                capture the session as a template
  discard                             drop the session without saving
  exercises / history / templates     catalog and saved data
  quit
`)
}

func (r *Runner) printStatus() {
	s := r.service.Tracker().Session()
	if s == nil {
		fmt.Fprintln(r.out, "no active session")
		return
	}

	elapsed := s.Elapsed(time.Now()).Round(time.Second)
	fmt.Fprintf(r.out, "%s (%s elapsed)\n", s.Name, elapsed)

	for i, ex := range s.Exercises {
		fmt.Fprintf(r.out, "%2d. %s", i+1, ex.ExerciseName)
		if ex.Comment != "" {
			fmt.Fprintf(r.out, "  — note: %s", ex.Comment)
		}
		if ex.LastComment != "" && ex.Comment == "" {
			fmt.Fprintf(r.out, "  (last time: %s)", ex.LastComment)
		}
		fmt.Fprintln(r.out)
		for _, set := range ex.Sets {
			fmt.Fprintf(r.out, "      %s %d: %s\n", checkbox(set.Completed), set.SetNumber, r.formatSet(ex.ExerciseType, set))
		}
	}

	summary := s.Summarize()
	fmt.Fprintf(r.out, "%d/%d sets completed\n", summary.CompletedSets, summary.TotalSets)
	if remaining, ok := r.service.Timer().Remaining(); ok {
		fmt.Fprintf(r.out, "rest: %ds remaining\n", remaining)
	}
}

func (r *Runner) printCatalog() {
	if len(r.catalog) == 0 {
		fmt.Fprintln(r.out, "exercise catalog unavailable")
		return
	}
	for _, def := range r.catalog {
		extra := ""
		if def.WeightPerSide {
			extra = " (weight per side)"
		}
		fmt.Fprintf(r.out, "%4d  %-30s %s%s\n", def.ID, def.Name, def.ExerciseType, extra)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// formatSet renders the fields that matter for the exercise type. Pending
// and unset values render as the user typed them or as a dash.
func (r *Runner) formatSet(typ models.ExerciseType, set session.SetEntry) string {
	if typ == models.ExerciseCardio {
		return fmt.Sprintf("%s s × %s km", orDash(set.DurationSeconds), orDash(set.DistanceKm))
	}
	unit := r.prefs.WeightUnit
	if unit == "" {
		unit = "kg"
	}
	return fmt.Sprintf("%s %s × %s reps", orDash(set.Weight), unit, orDash(set.Reps))
}

func orDash(f session.Field) string {
	if s := f.String(); s != "" {
		return s
	}
	return "-"
}
