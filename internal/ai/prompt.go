package ai

import (
	"fmt"
	"strings"
	"time"
)

// MeetingCandidate is one meeting offered to the host-relevance prompt.
type MeetingCandidate struct {
	ID          uint
	Description string
}

// SlotCandidate is one active slot offered to the guest-match prompt.
type SlotCandidate struct {
	ID          uint
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// HostCandidate is one host with active slots offered to the guest-match prompt.
type HostCandidate struct {
	ID         uint
	Name       string
	Profession string
	Slots      []SlotCandidate
}

// BuildHostRelevancePrompt asks the model to score each meeting 0-10 by fit
// to the host's profession and return a JSON array ordered most-to-least
// relevant. Pure string templating; never fails, including for an empty
// meeting list.
func BuildHostRelevancePrompt(profession string, meetings []MeetingCandidate) string {
	var b strings.Builder

	b.WriteString("You are provided with details about a host and their associated meetings.\n\n")
	fmt.Fprintf(&b, "Host profession: %q\n\n", profession)
	b.WriteString("Analyze the relevance of each meeting for the host based on its description. ")
	b.WriteString("Relevance should be a score out of 10 that represents how suitable the meeting is for the host's profession.\n\n")
	b.WriteString("Meetings to analyze:\n")
	for _, m := range meetings {
		fmt.Fprintf(&b, "ID: %d, Description: %q\n", m.ID, m.Description)
	}
	b.WriteString("\nYour task:\n")
	b.WriteString("- Assign a relevance score (0-10) to each meeting.\n")
	b.WriteString("- Output only a JSON array in the following format from most to least relevance:\n")
	b.WriteString("  [\n    { \"id\": number, \"relevance\": number },\n    ...\n  ]\n\n")
	b.WriteString("Strictly adhere to this format and do not include any additional text, explanations, or commentary outside the JSON output.\n")

	return b.String()
}

// BuildGuestMatchPrompt asks the model to order every candidate slot by
// relevance to the guest's free-text requirement, never omitting entries even
// on weak matches. Pure string templating; never fails, including for an
// empty host list.
func BuildGuestMatchPrompt(requirement string, hosts []HostCandidate) string {
	var b strings.Builder

	b.WriteString("You are tasked with analyzing meeting slots for relevance based on a guest's requirements. ")
	b.WriteString("The requirement text may not be fully relevant, but do your best to match it against each host's profession and slot descriptions. ")
	b.WriteString("Always include every candidate slot in the result, whether or not it is a strong match.\n\n")
	fmt.Fprintf(&b, "Guest's requirements:\n%q\n\n", requirement)
	b.WriteString("Hosts and their available slots:\n")
	for _, h := range hosts {
		fmt.Fprintf(&b, "Host ID: %d, Name: %q, Profession: %q\n", h.ID, h.Name, h.Profession)
		for _, s := range h.Slots {
			fmt.Fprintf(&b, "  Slot ID: %d, Title: %q, Description: %q, Start Time: %s, End Time: %s\n",
				s.ID, s.Title, s.Description,
				s.StartTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339))
		}
	}
	b.WriteString("\nBased on the requirements, analyze the relevance of each slot:\n")
	b.WriteString("1. Relevance is determined by how well the slot's description matches the guest's requirements.\n")
	b.WriteString("2. Relevance is also influenced by how well the host's profession aligns with the guest's requirements.\n\n")
	b.WriteString("Your task:\n")
	b.WriteString("Return only a JSON array ordering every slot from best match to worst, using the following structure:\n")
	b.WriteString("[\n  { \"slotId\": number, \"hostId\": number },\n  ...\n]\n\n")
	b.WriteString("Strictly follow this format and do not include any additional text or explanation.\n")

	return b.String()
}
