package models

// VideoCallStatus is the acceptance state of a video-call request
// attached to a chat message.
type VideoCallStatus string

const (
	VideoCallPending  VideoCallStatus = "pending"
	VideoCallAccepted VideoCallStatus = "accepted"
	VideoCallRejected VideoCallStatus = "rejected"
)

// VideoCall is the optional video-call-request sub-state of a Message.
// The meeting URL is generated when the request is created.
type VideoCall struct {
	Status     VideoCallStatus `json:"status"`
	MeetingURL string          `json:"meetingUrl"`
}

// Message is a chat entry in an Application's message list.
type Message struct {
	ID        string     `json:"id"`
	Sender    string     `json:"sender"` // profile id of the author
	Text      string     `json:"text"`
	SentAt    int64      `json:"sentAt"` // epoch ms
	VideoCall *VideoCall `json:"videoCall,omitempty"`
}
