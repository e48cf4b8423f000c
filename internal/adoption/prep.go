package adoption

import (
	"fmt"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// Preparation is the role-specific checklist attached to meeting
// notifications. It is derived, never persisted.
type Preparation struct {
	Checklist   []string `json:"checklist"`
	Tips        []string `json:"tips"`
	WhatToBring []string `json:"what_to_bring"`
}

// PrepareMeeting builds the adopter's preparation material for a meeting.
// Deterministic for a given (meetingType, animal) pair.
func PrepareMeeting(meetingType repository.MeetingType, animal *repository.Animal) Preparation {
	var prep Preparation

	switch meetingType {
	case repository.MeetingVirtual:
		prep.Checklist = []string{
			"Test your camera and microphone",
			"Find a quiet, well-lit room",
			fmt.Sprintf("Prepare questions about %s's daily routine", animal.Name),
			"Have your living space ready to show on camera",
		}
		prep.Tips = []string{
			"Join a few minutes early",
			"Ask about post-adoption support",
		}
		prep.WhatToBring = []string{
			"A list of household members and existing pets",
			"Photos of your home and yard",
		}
	default:
		prep.Checklist = []string{
			"Confirm the shelter address and visiting hours",
			"Plan to spend at least 30 minutes with the animal",
			fmt.Sprintf("Prepare questions about %s's daily routine", animal.Name),
			"Bring every household member who will live with the pet",
		}
		prep.Tips = []string{
			"Arrive a few minutes early",
			"Let the animal approach you first",
			"Ask about post-adoption support",
		}
		prep.WhatToBring = []string{
			"Government-issued photo ID",
			"Proof of residence or landlord pet permission",
		}
	}

	if animal.AgeMonths < 12 {
		prep.Tips = append(prep.Tips, "Ask about vaccination and training schedules for young animals")
	}
	if animal.SpecialNeeds {
		prep.Checklist = append(prep.Checklist, fmt.Sprintf("Review %s's care requirements with staff", animal.Name))
		prep.Tips = append(prep.Tips, "Ask for the full medical history and ongoing care costs")
	}

	return prep
}
