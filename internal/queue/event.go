// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// ActivityQueueName is the durable queue carrying playlist activity events.
const ActivityQueueName = "playlist.activity"

// ActivityRecordedEvent is published after a playlist membership mutation
// succeeds. It carries enough for downstream consumers to log or notify
// without querying the primary database.
type ActivityRecordedEvent struct {
	PlaylistID string `json:"playlist_id"`
	SongID     string `json:"song_id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"` // "add" | "delete"
	RecordedAt string `json:"recorded_at"`
}
