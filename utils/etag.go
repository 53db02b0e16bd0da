package utils

import (
	"fmt"
	"hash/fnv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag builds a weak validator from a record's identity and last
// update time, so unchanged lists answer with 304.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", id.Hex(), updatedAt.UnixNano())
	return fmt.Sprintf(`"%x"`, h.Sum64())
}
