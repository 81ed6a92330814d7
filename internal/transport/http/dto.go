package http

import "github.com/cwrk-planet/activity-service/internal/domain"

// ActivityItem is the wire form of an activity record.
type ActivityItem struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type ActivitiesResponse map[string]ActivityItem

func toItem(a domain.Activity) ActivityItem {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityItem{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}
