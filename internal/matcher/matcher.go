// Package matcher computes gift assignments: a random permutation of a
// group's roster with no self-assignments and no excluded pairs.
package matcher

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInfeasible is returned when no valid assignment exists for the given
// roster and exclusions, or none was found within the retry budget.
var ErrInfeasible = errors.New("no valid assignment satisfies the exclusion constraints")

// maxAttempts bounds the rejection-sampling loop. For realistic groups
// (sparse exclusions) a valid permutation is found within a handful of
// draws; the cap only matters for near-infeasible exclusion graphs.
const maxAttempts = 10000

// Assign pairs every participant with a recipient such that nobody is
// assigned to themselves and no giver is paired with a username from their
// exclusion list. The result is a permutation: every participant appears
// exactly once as giver and exactly once as recipient.
//
// The algorithm is rejection sampling: shuffle the recipient list and accept
// the first permutation that violates no constraint. Attempts is the number
// of permutations drawn, returned for observability. Assignments that are
// provably impossible fail fast with ErrInfeasible before any sampling.
func Assign(participants []string, exclusions map[string][]string) (pairs map[string]string, attempts int, err error) {
	n := len(participants)
	if n < 2 {
		return nil, 0, fmt.Errorf("need at least 2 participants, got %d", n)
	}

	excluded := buildExclusionSet(participants, exclusions)

	// Fail fast when some giver has nobody left to give to. This also
	// covers n=2 with any exclusion between the pair: the only derangement
	// of two elements is the swap, so one exclusion kills both directions.
	if err := checkFeasible(participants, excluded); err != nil {
		return nil, 0, err
	}

	receivers := make([]string, n)
	copy(receivers, participants)

	for attempts = 1; attempts <= maxAttempts; attempts++ {
		rand.Shuffle(n, func(i, j int) {
			receivers[i], receivers[j] = receivers[j], receivers[i]
		})
		if valid(participants, receivers, excluded) {
			pairs = make(map[string]string, n)
			for i, giver := range participants {
				pairs[giver] = receivers[i]
			}
			return pairs, attempts, nil
		}
	}

	return nil, maxAttempts, fmt.Errorf("%w: gave up after %d attempts", ErrInfeasible, maxAttempts)
}

// buildExclusionSet converts the per-giver exclusion lists into set form and
// adds the implicit self-exclusion for every participant.
func buildExclusionSet(participants []string, exclusions map[string][]string) map[string]map[string]bool {
	excluded := make(map[string]map[string]bool, len(participants))
	for _, giver := range participants {
		set := map[string]bool{giver: true}
		for _, recipient := range exclusions[giver] {
			set[recipient] = true
		}
		excluded[giver] = set
	}
	return excluded
}

// checkFeasible returns ErrInfeasible if any giver's allowed-recipient set
// is empty. This is a necessary condition only; feasible-looking graphs can
// still exhaust the retry budget.
func checkFeasible(participants []string, excluded map[string]map[string]bool) error {
	for _, giver := range participants {
		allowed := 0
		for _, recipient := range participants {
			if !excluded[giver][recipient] {
				allowed++
			}
		}
		if allowed == 0 {
			return fmt.Errorf("%w: %q has no allowed recipient", ErrInfeasible, giver)
		}
	}
	if len(participants) == 2 {
		a, b := participants[0], participants[1]
		if excluded[a][b] || excluded[b][a] {
			return fmt.Errorf("%w: the only derangement of %q and %q is excluded", ErrInfeasible, a, b)
		}
	}
	return nil
}

// valid reports whether pairing givers[i] with receivers[i] violates no
// constraint.
func valid(givers, receivers []string, excluded map[string]map[string]bool) bool {
	for i, giver := range givers {
		if excluded[giver][receivers[i]] {
			return false
		}
	}
	return true
}
