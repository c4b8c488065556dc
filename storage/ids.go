package storage

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// idLength is the number of hex characters of a generated record id
const idLength = 24

// newID returns a 24 character lowercase hex id. The leading bytes are the
// millisecond timestamp of a version 7 uuid, so ids sort by creation time.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return hex.EncodeToString(id[:idLength/2])
}
