package adoption_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/adoption"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

func TestPrepareMeeting(t *testing.T) {
	buddy := &repository.Animal{ID: "animal-1", Name: "Buddy", Species: "dog", AgeMonths: 36}

	t.Run("deterministic for the same input", func(t *testing.T) {
		first := adoption.PrepareMeeting(repository.MeetingInPerson, buddy)
		second := adoption.PrepareMeeting(repository.MeetingInPerson, buddy)
		assert.Equal(t, first, second)
	})

	t.Run("virtual and in person differ", func(t *testing.T) {
		virtual := adoption.PrepareMeeting(repository.MeetingVirtual, buddy)
		inPerson := adoption.PrepareMeeting(repository.MeetingInPerson, buddy)
		assert.NotEqual(t, virtual.Checklist, inPerson.Checklist)
		assert.Contains(t, virtual.Checklist[0], "camera")
		assert.Contains(t, inPerson.WhatToBring[0], "ID")
	})

	t.Run("checklist mentions the animal by name", func(t *testing.T) {
		prep := adoption.PrepareMeeting(repository.MeetingInPerson, buddy)
		found := false
		for _, item := range prep.Checklist {
			if strings.Contains(item, "Buddy") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("young animal adds a tip", func(t *testing.T) {
		adult := adoption.PrepareMeeting(repository.MeetingInPerson, buddy)
		puppy := adoption.PrepareMeeting(repository.MeetingInPerson, &repository.Animal{Name: "Buddy", AgeMonths: 4})
		assert.Len(t, puppy.Tips, len(adult.Tips)+1)
	})

	t.Run("special needs extends the checklist", func(t *testing.T) {
		plain := adoption.PrepareMeeting(repository.MeetingInPerson, buddy)
		special := adoption.PrepareMeeting(repository.MeetingInPerson, &repository.Animal{Name: "Buddy", AgeMonths: 36, SpecialNeeds: true})
		assert.Len(t, special.Checklist, len(plain.Checklist)+1)
	})
}
