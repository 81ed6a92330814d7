package domain

// Activity is a named extracurricular offering. The name is the registry key
// and is not part of the record.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a copy with its own participants slice (never nil).
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

func (a Activity) HasParticipant(email string) bool {
	return a.indexOf(email) >= 0
}

func (a Activity) Full() bool {
	return len(a.Participants) >= a.MaxParticipants
}

func (a Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// Without returns the roster with the first occurrence of email removed,
// keeping the order of the remaining entries.
func (a Activity) Without(email string) []string {
	i := a.indexOf(email)
	if i < 0 {
		return a.Participants
	}
	out := make([]string, 0, len(a.Participants)-1)
	out = append(out, a.Participants[:i]...)
	return append(out, a.Participants[i+1:]...)
}
