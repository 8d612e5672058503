package utils

import "github.com/google/uuid"

// NewID returns a prefixed random identifier such as "playlist-<uuid>".
// Every entity id in the database is generated by the application rather
// than the database so inserts can return the id without a round trip.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
