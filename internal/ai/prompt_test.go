package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildHostRelevancePrompt(t *testing.T) {
	meetings := []MeetingCandidate{
		{ID: 10, Description: "Annual checkup"},
		{ID: 11, Description: "Guitar lesson"},
	}

	prompt := BuildHostRelevancePrompt("Cardiologist", meetings)

	assert.Contains(t, prompt, `"Cardiologist"`)
	assert.Contains(t, prompt, "ID: 10")
	assert.Contains(t, prompt, `"Annual checkup"`)
	assert.Contains(t, prompt, "ID: 11")
	assert.Contains(t, prompt, `{ "id": number, "relevance": number }`)
	assert.Contains(t, prompt, "score out of 10")
}

func TestBuildHostRelevancePrompt_EmptyMeetings(t *testing.T) {
	prompt := BuildHostRelevancePrompt("Cardiologist", nil)

	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, `"Cardiologist"`)
	assert.NotContains(t, prompt, "ID:")
}

func TestBuildGuestMatchPrompt(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	hosts := []HostCandidate{
		{
			ID: 7, Name: "Alice", Profession: "Cardiologist",
			Slots: []SlotCandidate{
				{ID: 3, Title: "Morning consultations", Description: "General consults", StartTime: start, EndTime: start.Add(2 * time.Hour)},
			},
		},
		{
			ID: 8, Name: "Bruno", Profession: "Tax Advisor",
			Slots: []SlotCandidate{
				{ID: 4, Title: "Filing review", StartTime: start, EndTime: start.Add(time.Hour)},
			},
		},
	}

	prompt := BuildGuestMatchPrompt("I need help with my heart condition", hosts)

	assert.Contains(t, prompt, "I need help with my heart condition")
	assert.Contains(t, prompt, "Host ID: 7")
	assert.Contains(t, prompt, "Host ID: 8")
	assert.Contains(t, prompt, "Slot ID: 3")
	assert.Contains(t, prompt, "Slot ID: 4")
	assert.Contains(t, prompt, "2026-03-02T09:00:00Z")
	assert.Contains(t, prompt, `{ "slotId": number, "hostId": number }`)
	// Weak matches must still appear in the output.
	assert.Contains(t, prompt, "every candidate slot")
}

func TestBuildGuestMatchPrompt_EmptyHosts(t *testing.T) {
	prompt := BuildGuestMatchPrompt("anything", nil)

	assert.NotEmpty(t, prompt)
	assert.False(t, strings.Contains(prompt, "Host ID:"))
}
