package rules

import "github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"

// allowedTransitions is the full moderation state machine. A missing
// entry means the move is never legal, regardless of actor.
var allowedTransitions = map[enums.ModerationStatus][]enums.ModerationStatus{
	enums.ModerationStatusDraft:    {enums.ModerationStatusPending, enums.ModerationStatusRemoved},
	enums.ModerationStatusPending:  {enums.ModerationStatusApproved, enums.ModerationStatusRejected, enums.ModerationStatusRemoved},
	enums.ModerationStatusApproved: {enums.ModerationStatusRejected, enums.ModerationStatusExpired, enums.ModerationStatusRemoved},
	enums.ModerationStatusRejected: {enums.ModerationStatusPending, enums.ModerationStatusApproved, enums.ModerationStatusRemoved},
	enums.ModerationStatusExpired:  {enums.ModerationStatusRemoved},
	enums.ModerationStatusRemoved:  nil,
}

func CanTransition(from, to enums.ModerationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionAllowedFor applies the actor gate on top of the state table:
// owners may only submit (draft/rejected -> pending) or remove their own
// item, every other move needs a moderator role.
func TransitionAllowedFor(from, to enums.ModerationStatus, role enums.Role, isOwner bool) bool {
	if !CanTransition(from, to) {
		return false
	}
	if role.IsModerator() {
		return true
	}
	if !isOwner {
		return false
	}
	switch to {
	case enums.ModerationStatusPending, enums.ModerationStatusRemoved:
		return true
	}
	return false
}
