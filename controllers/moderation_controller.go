package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	calendar "github.com/lounyevents/event-calendar-go/calendar"
	config "github.com/lounyevents/event-calendar-go/config"
	models "github.com/lounyevents/event-calendar-go/models"
	utils "github.com/lounyevents/event-calendar-go/utils"
)

// ---------------- LIST PENDING ----------------
func ListSubmissions(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.Events().Find(ctx, bson.M{"status": models.StatusPending})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch submissions"})
			return
		}

		var submissions []models.Event
		if err := cursor.All(ctx, &submissions); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode submissions"})
			return
		}

		if len(submissions) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		latest := submissions[0]
		for _, sub := range submissions {
			if sub.UpdatedAt.After(latest.UpdatedAt) {
				latest = sub
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, submissions)
	}
}

// ---------------- APPROVE ----------------
// Approval is a single status flip, so the record keeps its identifier.
func ApproveSubmission(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := cfg.Events().UpdateOne(ctx,
			bson.M{"_id": oid, "status": models.StatusPending},
			bson.M{"$set": bson.M{
				"status":     models.StatusApproved,
				"updated_at": time.Now(),
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve submission"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "submission approved", "id": oid.Hex()})
	}
}

// ---------------- REJECT ----------------
// There is no stored rejected state: rejection deletes the record and its
// posters.
func RejectSubmission(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		err = cfg.Events().FindOne(ctx, bson.M{"_id": oid, "status": models.StatusPending}).Decode(&existing)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}

		res, err := cfg.Events().DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject submission"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}

		utils.DeletePoster(calendar.ExtractPosterPath(&existing))

		c.JSON(http.StatusOK, gin.H{"message": "submission rejected", "id": oid.Hex()})
	}
}
