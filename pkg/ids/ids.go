// Package ids issues the time-sortable identifiers used for every row.
package ids

import "github.com/google/uuid"

// New returns a UUIDv7 string. V7 ids sort by creation time, which keeps
// recency ordering cheap on TEXT primary keys. The rare entropy failure falls
// back to a random v4 id rather than surfacing an error to callers.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
