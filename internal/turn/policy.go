// Package turn decides who may speak next in a discussion.
//
// All decisions are derived from the discussion record and the messages
// already stored for its current round; nothing here touches the
// database or the network, which keeps the rules trivially testable.
package turn

import (
	"errors"

	"symposium.app/api-server/internal/model"
)

var (
	// ErrDiscussionCompleted rejects turns on a completed discussion.
	// Checked before every other rule.
	ErrDiscussionCompleted = errors.New("discussion is completed")

	// ErrNotParticipant rejects experts that are not on the panel.
	ErrNotParticipant = errors.New("expert is not a participant")

	// ErrAlreadyResponded rejects a second sequential-mode response from
	// the same expert within one round.
	ErrAlreadyResponded = errors.New("expert already responded this round")

	// ErrNotExpertTurn rejects out-of-order sequential-mode responses.
	ErrNotExpertTurn = errors.New("not this expert's turn")

	// ErrRoundIncomplete rejects advancing a round before every
	// participant has spoken in it.
	ErrRoundIncomplete = errors.New("round is not complete")
)

// Check reports whether expertID may respond now. roundMessages must be
// the messages recorded for the discussion's current round.
func Check(d *model.Discussion, expertID string, roundMessages []model.Message) error {
	if d.Status == model.DiscussionCompleted {
		return ErrDiscussionCompleted
	}
	if !d.HasParticipant(expertID) {
		return ErrNotParticipant
	}
	if d.Mode == model.ModeParallel {
		return nil
	}

	responded := respondedSet(roundMessages)
	if responded[expertID] {
		return ErrAlreadyResponded
	}
	next, ok := nextSequential(d, responded)
	if ok && next != expertID {
		return ErrNotExpertTurn
	}
	return nil
}

// Eligible returns the experts allowed to respond next, in panel order.
// Parallel mode keeps every participant eligible; sequential mode
// narrows the set to the single next unanswered participant.
func Eligible(d *model.Discussion, roundMessages []model.Message) []string {
	if d.Status == model.DiscussionCompleted {
		return nil
	}
	if d.Mode == model.ModeParallel {
		out := make([]string, len(d.ExpertIDs))
		copy(out, d.ExpertIDs)
		return out
	}

	next, ok := nextSequential(d, respondedSet(roundMessages))
	if !ok {
		return nil
	}
	return []string{next}
}

// CanAdvanceRound reports whether every participant has at least one
// message in the current round. Advancing is always explicit; it never
// happens as a side effect of the last response landing.
func CanAdvanceRound(d *model.Discussion, roundMessages []model.Message) bool {
	responded := respondedSet(roundMessages)
	for _, id := range d.ExpertIDs {
		if !responded[id] {
			return false
		}
	}
	return true
}

// CheckAdvance validates an explicit round-advance request.
func CheckAdvance(d *model.Discussion, roundMessages []model.Message) error {
	if d.Status == model.DiscussionCompleted {
		return ErrDiscussionCompleted
	}
	if !CanAdvanceRound(d, roundMessages) {
		return ErrRoundIncomplete
	}
	return nil
}

// respondedSet collects the expert authors present in roundMessages.
// User messages never count toward round completion.
func respondedSet(roundMessages []model.Message) map[string]bool {
	responded := make(map[string]bool, len(roundMessages))
	for _, m := range roundMessages {
		if m.FromExpert() {
			responded[m.Author] = true
		}
	}
	return responded
}

// nextSequential returns the first participant, in declaration order,
// that has not yet responded this round.
func nextSequential(d *model.Discussion, responded map[string]bool) (string, bool) {
	for _, id := range d.ExpertIDs {
		if !responded[id] {
			return id, true
		}
	}
	return "", false
}
