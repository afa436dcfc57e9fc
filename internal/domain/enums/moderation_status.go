package enums

type ModerationStatus string

const (
	ModerationStatusDraft    ModerationStatus = "draft"
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
	ModerationStatusExpired  ModerationStatus = "expired"
	ModerationStatusRemoved  ModerationStatus = "removed"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationStatusDraft,
		ModerationStatusPending,
		ModerationStatusApproved,
		ModerationStatusRejected,
		ModerationStatusExpired,
		ModerationStatusRemoved:
		return true
	}
	return false
}
