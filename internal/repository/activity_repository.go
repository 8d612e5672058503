package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/yudistira/open-music-api/internal/utils"
)

// Membership actions recorded in the activity log.
const (
	ActionAdd    = "add"
	ActionDelete = "delete"
)

// Activity is one row of a playlist's append-only history, joined with
// user and song display data for presentation.
type Activity struct {
	Username string
	Title    string
	Action   string
	Time     time.Time
}

// ActivityRepo appends to and reads the playlist_song_activities table.
// Rows are immutable history: they are never updated or deleted directly,
// only removed by cascading playlist deletion.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Record appends an activity row stamped with the current UTC time.
func (r *ActivityRepo) Record(ctx context.Context, playlistID, songID, userID, action string) error {
	id := utils.NewID("activity")
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time) VALUES (?,?,?,?,?,?)",
		id, playlistID, songID, userID, action, time.Now().UTC())
	if err != nil {
		return invariant("failed to record activity")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return invariant("failed to record activity")
	}
	return nil
}

// ListByPlaylist returns a playlist's history joined with usernames and
// song titles. An empty result is valid: a playlist with no history.
func (r *ActivityRepo) ListByPlaylist(ctx context.Context, playlistID string) ([]Activity, error) {
	const q = `SELECT u.username, s.title, a.action, a.time
	           FROM playlist_song_activities a
	           INNER JOIN users u ON u.id = a.user_id
	           INNER JOIN songs s ON s.id = a.song_id
	           WHERE a.playlist_id = ?`
	rows, err := r.DB.QueryContext(ctx, q, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Username, &a.Title, &a.Action, &a.Time); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
