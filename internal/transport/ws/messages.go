package ws

// Message types sent to roster subscribers.
const (
	TypeState        = "state" // roster snapshot on connect
	TypeSignedUp     = "participant_signed_up"
	TypeUnregistered = "participant_unregistered"
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type StatePayload struct {
	Activity        string   `json:"activity"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type RosterPayload struct {
	Activity     string   `json:"activity"`
	Email        string   `json:"email"`
	Participants []string `json:"participants"`
}
