package session

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// HistoryFetcher retrieves the most recent completed performance of an
// exercise for a user. A nil snapshot means no prior performance exists.
type HistoryFetcher interface {
	LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error)
}

// defaultSetsCount is used when a template entry does not prescribe a count.
const defaultSetsCount = 3

// Resolver turns a template into the initial exercise list of a session by
// merging template targets with each exercise's last performance.
type Resolver struct {
	history HistoryFetcher
	log     *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(history HistoryFetcher, log *slog.Logger) *Resolver {
	return &Resolver{history: history, log: log}
}

// Resolve builds the seeded exercise list for a session started from tmpl.
// History fetches for all entries run concurrently and all complete before
// the list is assembled, so the caller never sees a partially populated
// session. A failed fetch degrades to "no history" and resolution continues
// with template-only fallback values.
func (r *Resolver) Resolve(ctx context.Context, tmpl *models.Template, userID int64) ([]Exercise, error) {
	entries := make([]models.TemplateExercise, len(tmpl.Exercises))
	copy(entries, tmpl.Exercises)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OrderIndex < entries[j].OrderIndex
	})

	snapshots := make([]*models.PerformanceSnapshot, len(entries))
	var wg sync.WaitGroup
	for i, te := range entries {
		wg.Add(1)
		go func(i int, exerciseID int64) {
			defer wg.Done()
			snap, err := r.history.LastPerformance(ctx, exerciseID, userID)
			if err != nil {
				r.log.Warn("last performance fetch failed, using template targets",
					"exercise_id", exerciseID, "error", err)
				return
			}
			snapshots[i] = snap
		}(i, te.Exercise.ID)
	}
	wg.Wait()

	exercises := make([]Exercise, 0, len(entries))
	for i, te := range entries {
		exercises = append(exercises, resolveExercise(te, snapshots[i]))
	}
	renumberExercises(exercises)
	return exercises, nil
}

// resolveExercise merges one template entry with its history snapshot.
// Slots covered by history copy the historical values verbatim; extra slots
// required by the template get the historical averages, falling back to the
// template targets when no history exists.
func resolveExercise(te models.TemplateExercise, snap *models.PerformanceSnapshot) Exercise {
	var lastSets []models.PerformedSet
	lastComment := ""
	if snap != nil {
		lastSets = append(lastSets, snap.Sets...)
		sort.SliceStable(lastSets, func(i, j int) bool {
			return lastSets[i].SetNumber < lastSets[j].SetNumber
		})
		lastComment = snap.Comment
	}

	templateCount := te.SetsCount
	if templateCount <= 0 {
		templateCount = defaultSetsCount
	}
	setsCount := templateCount
	if len(lastSets) > setsCount {
		setsCount = len(lastSets)
	}

	fill := fallbackValues(te, lastSets, setsCount)

	sets := make([]SetEntry, 0, setsCount)
	for i := 0; i < setsCount; i++ {
		if i < len(lastSets) {
			sets = append(sets, SetEntry{
				SetNumber:       i + 1,
				Weight:          fieldFromPtr(lastSets[i].Weight),
				Reps:            fieldFromIntPtr(lastSets[i].Reps),
				DurationSeconds: fieldFromIntPtr(lastSets[i].DurationSeconds),
				DistanceKm:      fieldFromPtr(lastSets[i].DistanceKm),
			})
			continue
		}
		s := fill
		s.SetNumber = i + 1
		sets = append(sets, s)
	}

	return Exercise{
		ExerciseID:    te.Exercise.ID,
		ExerciseName:  te.Exercise.Name,
		ExerciseType:  te.Exercise.ExerciseType,
		EquipmentType: te.Exercise.EquipmentType,
		WeightPerSide: te.Exercise.WeightPerSide,
		OrderIndex:    te.OrderIndex,
		Sets:          sets,
		LastComment:   lastComment,
	}
}

// fallbackValues computes the values for set slots beyond the history:
// historical averages when any history exists, template targets otherwise.
func fallbackValues(te models.TemplateExercise, lastSets []models.PerformedSet, setsCount int) SetEntry {
	fill := SetEntry{
		Weight:          fieldFromPtr(te.TargetWeight),
		Reps:            fieldFromIntPtr(te.TargetReps),
		DurationSeconds: fieldFromIntPtr(te.TargetDurationSeconds),
		DistanceKm:      fieldFromPtr(te.TargetDistanceKm),
	}
	if len(lastSets) == 0 || setsCount <= len(lastSets) {
		return fill
	}

	switch te.Exercise.ExerciseType {
	case models.ExerciseCardio:
		var durSum, distSum float64
		for _, s := range lastSets {
			if s.DurationSeconds != nil {
				durSum += float64(*s.DurationSeconds)
			}
			if s.DistanceKm != nil {
				distSum += *s.DistanceKm
			}
		}
		n := float64(len(lastSets))
		fill.DurationSeconds = FieldOf(math.Round(durSum / n))
		if avgDist := math.Round(distSum/n*100) / 100; avgDist > 0 {
			fill.DistanceKm = FieldOf(avgDist)
		} else {
			fill.DistanceKm = Field{}
		}
	default:
		var weightSum, repsSum float64
		for _, s := range lastSets {
			if s.Weight != nil {
				weightSum += *s.Weight
			}
			if s.Reps != nil {
				repsSum += float64(*s.Reps)
			}
		}
		n := float64(len(lastSets))
		fill.Weight = FieldOf(weightSum / n)
		fill.Reps = FieldOf(math.Round(repsSum / n))
	}
	return fill
}

// SeedFromSnapshot converts a performance snapshot into initial sets for a
// manually added exercise: a 1:1 copy of the last performance, renumbered
// densely and not completed.
func SeedFromSnapshot(snap *models.PerformanceSnapshot) []SetEntry {
	if snap == nil {
		return nil
	}
	ordered := make([]models.PerformedSet, len(snap.Sets))
	copy(ordered, snap.Sets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SetNumber < ordered[j].SetNumber
	})
	sets := make([]SetEntry, 0, len(ordered))
	for i, s := range ordered {
		sets = append(sets, SetEntry{
			SetNumber:       i + 1,
			Weight:          fieldFromPtr(s.Weight),
			Reps:            fieldFromIntPtr(s.Reps),
			DurationSeconds: fieldFromIntPtr(s.DurationSeconds),
			DistanceKm:      fieldFromPtr(s.DistanceKm),
		})
	}
	return sets
}

func fieldFromPtr(v *float64) Field {
	if v == nil {
		return Field{}
	}
	return FieldOf(*v)
}

func fieldFromIntPtr(v *int) Field {
	if v == nil {
		return Field{}
	}
	return FieldOf(float64(*v))
}
