package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	now := time.Now()

	if GenerateETag(id, now) != GenerateETag(id, now) {
		t.Error("same inputs must produce the same etag")
	}
	if GenerateETag(id, now) == GenerateETag(id, now.Add(time.Second)) {
		t.Error("different update times must produce different etags")
	}
	if GenerateETag(id, now) == GenerateETag(primitive.NewObjectID(), now) {
		t.Error("different records must produce different etags")
	}

	etag := GenerateETag(id, now)
	if etag[0] != '"' || etag[len(etag)-1] != '"' {
		t.Errorf("etag should be quoted, got %s", etag)
	}
}
