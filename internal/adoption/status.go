package adoption

import (
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// legalTransitions is the full status graph. Terminal statuses have no
// outgoing edges.
var legalTransitions = map[repository.RequestStatus][]repository.RequestStatus{
	repository.StatusPending: {
		repository.StatusApproved,
		repository.StatusOnHold,
		repository.StatusRejected,
		repository.StatusIgnored,
		repository.StatusCancelled,
	},
	repository.StatusOnHold: {
		repository.StatusApproved,
		repository.StatusRejected,
		repository.StatusIgnored,
		repository.StatusCancelled,
	},
	repository.StatusApproved: {
		repository.StatusMeeting,
		repository.StatusRejected,
	},
	repository.StatusMeeting: {
		repository.StatusFinalized,
		repository.StatusRejected,
	},
}

func canTransition(from, to repository.RequestStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// activeStatuses are the statuses that block a sibling approval: at most one
// request per animal may hold one of them.
func holdsAnimalSlot(s repository.RequestStatus) bool {
	switch s {
	case repository.StatusApproved, repository.StatusMeeting, repository.StatusFinalized:
		return true
	}
	return false
}
