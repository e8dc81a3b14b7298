package epoch

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/temirov/git-epoch/internal/gitrepo"
)

const (
	secondsPerDayConstant                = 60 * 60 * 24
	invalidEpochGapMessageConstant       = "epoch gap must be a finite non-negative number of days"
	invalidEpochGapValueTemplateConstant = "%w: %v"
)

// ErrInvalidEpochGap indicates a negative or non-finite epoch gap.
var ErrInvalidEpochGap = errors.New(invalidEpochGapMessageConstant)

// ValidateEpochGap reports whether gapDays can be used as an epoch threshold.
func ValidateEpochGap(gapDays float64) error {
	if math.IsNaN(gapDays) || math.IsInf(gapDays, 0) || gapDays < 0 {
		return fmt.Errorf(invalidEpochGapValueTemplateConstant, ErrInvalidEpochGap, gapDays)
	}
	return nil
}

// FindEpochs returns, in chronological order, every commit whose predecessor was committed more
// than gapDays earlier. The earliest commit never starts an epoch. The input slice is left untouched.
func FindEpochs(commits []gitrepo.Commit, gapDays float64) []gitrepo.Commit {
	if len(commits) < 2 {
		return nil
	}

	chronologicalCommits := slices.Clone(commits)
	slices.SortStableFunc(chronologicalCommits, func(first gitrepo.Commit, second gitrepo.Commit) int {
		return first.CommittedAt.Compare(second.CommittedAt)
	})

	gapSeconds := gapDays * secondsPerDayConstant
	var boundaries []gitrepo.Commit
	for commitIndex := 1; commitIndex < len(chronologicalCommits); commitIndex++ {
		previousCommit := chronologicalCommits[commitIndex-1]
		currentCommit := chronologicalCommits[commitIndex]
		elapsedSeconds := currentCommit.CommittedAt.Unix() - previousCommit.CommittedAt.Unix()
		if float64(elapsedSeconds) > gapSeconds {
			boundaries = append(boundaries, currentCommit)
		}
	}

	return boundaries
}
