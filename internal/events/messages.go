package events

import (
	"encoding/json"
	"os"
	"time"
)

// RefreshMessage announces that sales or invoice records changed and cached
// dashboards are stale.
type RefreshMessage struct {
	Reason    string    `json:"reason"`
	Origin    string    `json:"origin,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRefreshMessage(reason string) *RefreshMessage {
	origin, _ := os.Hostname()
	return &RefreshMessage{
		Reason:    reason,
		Origin:    origin,
		Timestamp: time.Now().UTC(),
	}
}

func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
