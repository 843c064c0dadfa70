// Package cli implements the interactive workout tracker: a command loop
// owning one session.Service, with a local outbox so finished workouts
// survive a dead server.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/Brati10/fitness-tracker/internal/outbox"
	"github.com/Brati10/fitness-tracker/internal/session"
)

// Lister is the read surface the history and template commands use, beyond
// what session.Backend covers. *api.Client satisfies it.
type Lister interface {
	ListWorkouts(ctx context.Context, userID int64) ([]models.Workout, error)
	ListTemplates(ctx context.Context, userID int64) ([]models.Template, error)
}

// Runner drives the interactive loop. It is the sole owner of the session
// and the rest timer.
type Runner struct {
	service *session.Service
	lister  Lister
	spool   *outbox.Outbox
	in      io.Reader
	out     io.Writer

	prefs         models.Preferences
	catalog       []models.ExerciseDefinition
	pendingRemove *session.RemovePrompt
}

// NewRunner wires a runner. spool may be nil when offline durability is not
// wanted (tests).
func NewRunner(service *session.Service, lister Lister, spool *outbox.Outbox, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		service: service,
		lister:  lister,
		spool:   spool,
		in:      in,
		out:     out,
	}
}

// Run flushes the outbox, loads preferences, then reads commands until EOF
// or quit.
func (r *Runner) Run(ctx context.Context) error {
	if r.spool != nil {
		if saved, err := r.spool.Flush(ctx, r.service.Backend()); err != nil {
			fmt.Fprintf(r.out, "outbox retry failed: %v\n", err)
		} else if saved > 0 {
			fmt.Fprintf(r.out, "uploaded %d workout(s) from a previous run\n", saved)
		}
	}

	r.prefs = r.service.LoadPreferences(ctx)
	r.catalog = r.service.Catalog(ctx)
	fmt.Fprintf(r.out, "fittrack — signed in as %s. Type 'help' for commands.\n", r.service.User().Username)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := r.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. Returns true when the loop should stop.
func (r *Runner) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	// A pending removal confirmation intercepts the next input.
	if r.pendingRemove != nil {
		prompt := r.pendingRemove
		r.pendingRemove = nil
		if cmd == "y" || cmd == "yes" {
			if err := r.service.Tracker().ConfirmRemoveExercise(prompt); err != nil {
				return false, err
			}
			fmt.Fprintf(r.out, "removed %s\n", prompt.ExerciseName)
		} else {
			fmt.Fprintln(r.out, "removal cancelled")
		}
		return false, nil
	}

	switch cmd {
	case "help":
		r.printHelp()
	case "start":
		return false, r.cmdStart(args)
	case "template":
		return false, r.cmdTemplate(ctx, args)
	case "add":
		return false, r.cmdAdd(ctx, args)
	case "status":
		r.printStatus()
	case "set":
		return false, r.cmdSet(args)
	case "done":
		return false, r.cmdDone(args)
	case "addset":
		return false, r.cmdAddSet(args)
	case "dropset":
		return false, r.cmdDropSet(args)
	case "move":
		return false, r.cmdMove(args)
	case "remove":
		return false, r.cmdRemove(args)
	case "comment":
		return false, r.cmdComment(args)
	case "rest":
		return false, r.cmdRest(args)
	case "finish":
		return false, r.cmdFinish(ctx)
	case "save-template":
		return false, r.cmdSaveTemplate(ctx, args)
	case "discard":
		r.service.Discard()
		fmt.Fprintln(r.out, "session discarded")
	case "exercises":
		r.printCatalog()
	case "history":
		return false, r.cmdHistory(ctx)
	case "templates":
		return false, r.cmdTemplates(ctx)
	case "quit", "exit":
		if r.service.Tracker().Active() {
			fmt.Fprintln(r.out, "a session is active; 'finish' or 'discard' it first")
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return false, nil
}

func (r *Runner) cmdStart(args []string) error {
	name := strings.Join(args, " ")
	s, err := r.service.StartTraining(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "started %q\n", s.Name)
	return nil
}

func (r *Runner) cmdTemplate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: template <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid template id %q", args[0])
	}
	s, err := r.service.StartFromTemplate(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "started %q with %d exercise(s)\n", s.Name, len(s.Exercises))
	return nil
}

func (r *Runner) cmdAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <exercise name or id>")
	}
	def, err := r.findExercise(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := r.service.AddExercise(ctx, *def); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "added %s\n", def.Name)
	return nil
}

func (r *Runner) cmdSet(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: set <exercise> <set> <weight|reps|duration|distance> <value>")
	}
	ex, set, err := r.parseIndexes(args[0], args[1])
	if err != nil {
		return err
	}
	field, err := parseSetField(args[2])
	if err != nil {
		return err
	}
	return r.service.Tracker().UpdateSet(ex, set, field, args[3])
}

func (r *Runner) cmdDone(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: done <exercise> <set>")
	}
	ex, set, err := r.parseIndexes(args[0], args[1])
	if err != nil {
		return err
	}
	completed, err := r.service.Tracker().ToggleSetCompleted(ex, set)
	if err != nil {
		return err
	}
	if completed {
		if remaining, ok := r.service.Timer().Remaining(); ok {
			fmt.Fprintf(r.out, "set done — rest %ds\n", remaining)
		}
	} else {
		fmt.Fprintln(r.out, "set reopened")
	}
	return nil
}

func (r *Runner) cmdAddSet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: addset <exercise>")
	}
	ex, err := r.parseIndex(args[0])
	if err != nil {
		return err
	}
	return r.service.Tracker().AddEmptySet(ex)
}

func (r *Runner) cmdDropSet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dropset <exercise>")
	}
	ex, err := r.parseIndex(args[0])
	if err != nil {
		return err
	}
	removed, err := r.service.Tracker().RemoveLastUncompletedSet(ex)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(r.out, "no uncompleted set to drop")
	}
	return nil
}

func (r *Runner) cmdMove(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: move <from> <to>")
	}
	from, to, err := r.parseIndexes(args[0], args[1])
	if err != nil {
		return err
	}
	return r.service.Tracker().MoveExercise(from, to)
}

func (r *Runner) cmdRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <exercise>")
	}
	ex, err := r.parseIndex(args[0])
	if err != nil {
		return err
	}
	prompt, err := r.service.Tracker().RequestRemoveExercise(ex)
	if err != nil {
		return err
	}
	if prompt == nil {
		fmt.Fprintln(r.out, "removed")
		return nil
	}
	r.pendingRemove = prompt
	fmt.Fprintf(r.out, "%s has completed sets. Remove anyway? (y/n) ", prompt.ExerciseName)
	return nil
}

func (r *Runner) cmdComment(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: comment <exercise> [text]")
	}
	ex, err := r.parseIndex(args[0])
	if err != nil {
		return err
	}
	return r.service.Tracker().UpdateExerciseComment(ex, strings.Join(args[1:], " "))
}

func (r *Runner) cmdRest(args []string) error {
	timer := r.service.Timer()
	if len(args) == 0 {
		if remaining, ok := timer.Remaining(); ok {
			fmt.Fprintf(r.out, "rest: %ds remaining\n", remaining)
		} else {
			fmt.Fprintln(r.out, "rest timer idle")
		}
		return nil
	}
	switch args[0] {
	case "skip":
		timer.Skip()
		fmt.Fprintln(r.out, "rest skipped")
		return nil
	default:
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: rest [+N|-N|skip], got %q", args[0])
		}
		timer.Adjust(time.Duration(secs) * time.Second)
		if remaining, ok := timer.Remaining(); ok {
			fmt.Fprintf(r.out, "rest: %ds remaining\n", remaining)
		}
		return nil
	}
}

// cmdFinish saves the session. A server failure spools the payload locally
// so the workout is never lost; only when spooling also fails does the
// session stay active for another attempt.
func (r *Runner) cmdFinish(ctx context.Context) error {
	workout, err := r.service.Finish(ctx)
	if err == nil {
		fmt.Fprintf(r.out, "saved %q (%d exercise(s))\n", workout.Name, len(workout.Exercises))
		return nil
	}
	if errors.Is(err, session.ErrNothingToSave) || errors.Is(err, session.ErrNoActiveSession) {
		return err
	}
	if r.spool == nil {
		return err
	}

	req := session.BuildSaveRequest(r.service.Tracker().Session(), r.service.User().ID, time.Now())
	if spoolErr := r.spool.Spool(req); spoolErr != nil {
		return fmt.Errorf("save failed (%v) and spooling failed: %w", err, spoolErr)
	}
	r.service.Discard()
	fmt.Fprintf(r.out, "server unreachable — workout spooled locally, will retry next run\n")
	return nil
}

func (r *Runner) cmdSaveTemplate(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	tmpl, err := r.service.SaveAsTemplate(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "template %q saved (id %d)\n", tmpl.Name, tmpl.ID)
	return nil
}

func (r *Runner) cmdHistory(ctx context.Context) error {
	workouts, err := r.lister.ListWorkouts(ctx, r.service.User().ID)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Fprintln(r.out, "no saved workouts")
		return nil
	}
	for _, w := range workouts {
		fmt.Fprintf(r.out, "%s  %s  (%s)\n", w.StartTime.Format("02.01.2006 15:04"), w.Name, w.ID)
	}
	return nil
}

func (r *Runner) cmdTemplates(ctx context.Context) error {
	templates, err := r.lister.ListTemplates(ctx, r.service.User().ID)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Fprintln(r.out, "no templates")
		return nil
	}
	for _, t := range templates {
		fmt.Fprintf(r.out, "%3d  %s\n", t.ID, t.Name)
	}
	return nil
}

// findExercise resolves a catalog entry by id or by case-insensitive name.
func (r *Runner) findExercise(query string) (*models.ExerciseDefinition, error) {
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		for i := range r.catalog {
			if r.catalog[i].ID == id {
				return &r.catalog[i], nil
			}
		}
		return nil, fmt.Errorf("no exercise with id %d", id)
	}
	lower := strings.ToLower(query)
	for i := range r.catalog {
		if strings.ToLower(r.catalog[i].Name) == lower {
			return &r.catalog[i], nil
		}
	}
	return nil, fmt.Errorf("no exercise named %q (see 'exercises')", query)
}

// parseIndex converts a 1-based user index into the 0-based order index.
func (r *Runner) parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return n - 1, nil
}

func (r *Runner) parseIndexes(a, b string) (int, int, error) {
	first, err := r.parseIndex(a)
	if err != nil {
		return 0, 0, err
	}
	second, err := r.parseIndex(b)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func parseSetField(s string) (session.SetField, error) {
	switch strings.ToLower(s) {
	case "weight", "w":
		return session.SetWeight, nil
	case "reps", "r":
		return session.SetReps, nil
	case "duration", "dur":
		return session.SetDuration, nil
	case "distance", "dist":
		return session.SetDistance, nil
	}
	return 0, fmt.Errorf("unknown field %q (weight, reps, duration, distance)", s)
}
