package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	calendar "github.com/lounyevents/event-calendar-go/calendar"
	config "github.com/lounyevents/event-calendar-go/config"
	models "github.com/lounyevents/event-calendar-go/models"
	utils "github.com/lounyevents/event-calendar-go/utils"
)

var normalizeClient = &http.Client{Timeout: 10 * time.Second}

// ---------------- CREATE (public submission) ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Title       string  `form:"title" binding:"required"`
			Category    string  `form:"category"`
			StartDate   string  `form:"start_date" binding:"required"`
			EndDate     string  `form:"end_date"`
			Start       string  `form:"start"`
			End         string  `form:"end"`
			Location    string  `form:"location" binding:"required"`
			Lat         float64 `form:"lat"`
			Lng         float64 `form:"lng"`
			Price       string  `form:"price"`
			Organizer   string  `form:"organizer"`
			FacebookURL string  `form:"facebook_url"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		event := models.Event{
			ID:        primitive.NewObjectID(),
			Title:     input.Title,
			Category:  input.Category,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			Start:     input.Start,
			End:       input.End,
			Location:  input.Location,
			Coordinates: models.Coordinates{
				Lat: input.Lat,
				Lng: input.Lng,
			},
			Price:       input.Price,
			Organizer:   input.Organizer,
			FacebookURL: input.FacebookURL,
			Status:      models.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		// --- Attach host when the submitter is signed in ---
		if uid := c.GetString("user_id"); uid != "" {
			if hostID, err := primitive.ObjectIDFromHex(uid); err == nil {
				event.HostID = &hostID
			}
		}

		// --- Validate before any network call ---
		if fields := calendar.ValidateEvent(&event); len(fields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid fields", "fields": fields})
			return
		}

		// --- Normalize facebook link (degrades to the raw input) ---
		event.FacebookURL = calendar.NormalizeFacebookURL(
			c.Request.Context(), normalizeClient, cfg.FBResolverEndpoint, event.FacebookURL)

		// --- Handle poster upload ---
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}

		if form != nil && len(form.File["poster"]) > 0 {
			fileHeader := form.File["poster"][0]
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}

			upload, err := utils.UploadPoster(file, fileHeader)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "poster upload failed",
					"details": err.Error(),
					"file":    fileHeader.Filename,
				})
				return
			}

			event.PosterURL = upload.URL
			event.PosterPath = upload.Path
			event.ResizedPosterPath = upload.ResizedPath
		}

		// --- Save submission ---
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Events().InsertOne(ctx, event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		go utils.NotifySubmission(cfg.AdminEmail, event.Title, event.StartDate)

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- PUBLIC CALENDAR ----------------
// ListCalendar returns approved events grouped by month, newest-expired
// records pruned, with optional category/month/on_date filters.
func ListCalendar(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.Events().Find(ctx, bson.M{"status": models.StatusApproved})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode events"})
			return
		}

		// --- Prune events that already ended ---
		today := calendar.ToLocalDateKey(time.Now())
		upcoming := events[:0]
		for _, ev := range events {
			if ev.EffectiveEndDate() < today {
				purgeExpiredEvent(cfg, ev)
				continue
			}
			upcoming = append(upcoming, ev)
		}
		events = upcoming

		// --- Apply filters ---
		filter := calendar.Filter{Category: c.Query("category")}
		if m := c.Query("month"); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				filter.Month = calendar.MonthName(n)
			} else {
				filter.Month = m
			}
		}
		if d := c.Query("on_date"); d != "" {
			onDate, err := calendar.ParseLocalDateKey(d)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid on_date, use YYYY-MM-DD"})
				return
			}
			filter.OnDate = onDate
		}
		events = calendar.FilterEvents(events, filter)

		if len(events) == 0 {
			c.JSON(http.StatusOK, gin.H{"months": []gin.H{}})
			return
		}

		// --- Conditional-request headers from the most recent update ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		// --- Group into month sections, oldest month first ---
		grouped := calendar.GroupByMonth(events)
		referenceYear := time.Now().Year()
		months := make([]gin.H, 0, len(grouped))
		for _, key := range calendar.SortedMonthKeys(grouped) {
			months = append(months, gin.H{
				"key":     key,
				"heading": calendar.FormatMonthHeading(key, referenceYear),
				"events":  grouped[key],
			})
		}

		c.JSON(http.StatusOK, gin.H{"months": months})
	}
}

// purgeExpiredEvent removes an ended event and its posters. Best-effort on
// both counts: the calendar response never waits on cleanup outcomes.
func purgeExpiredEvent(cfg *config.Config, ev models.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Events().DeleteOne(ctx, bson.M{"_id": ev.ID}); err != nil {
			return
		}
		utils.DeletePoster(calendar.ExtractPosterPath(&ev))
	}()
}

// ---------------- LIST (host's own events) ----------------
func ListMyEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		hostID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{"host_id": hostID}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := cfg.Events().Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode events"})
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var event models.Event
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Events().FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		// Pending records are only visible to their host or an admin.
		if event.Status != models.StatusApproved && !canManage(c, &event) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID := c.GetString("user_id")
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := cfg.Events().FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		if !canManage(c, &existing) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		// --- Bind input (form-data for mixed text + file upload) ---
		var input struct {
			Title       string   `form:"title"`
			Category    *string  `form:"category"`
			StartDate   string   `form:"start_date"`
			EndDate     *string  `form:"end_date"`
			Start       *string  `form:"start"`
			End         *string  `form:"end"`
			Location    string   `form:"location"`
			Lat         *float64 `form:"lat"`
			Lng         *float64 `form:"lng"`
			Price       *string  `form:"price"`
			Organizer   *string  `form:"organizer"`
			FacebookURL *string  `form:"facebook_url"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}

		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Category != nil {
			if !models.IsValidCategory(*input.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
				return
			}
			update["category"] = *input.Category
		}
		if input.StartDate != "" {
			if _, err := calendar.ParseLocalDateKey(input.StartDate); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, use YYYY-MM-DD"})
				return
			}
			update["start_date"] = input.StartDate
		}
		if input.EndDate != nil {
			if *input.EndDate != "" {
				if _, err := calendar.ParseLocalDateKey(*input.EndDate); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, use YYYY-MM-DD"})
					return
				}
				startDate := existing.StartDate
				if input.StartDate != "" {
					startDate = input.StartDate
				}
				if *input.EndDate < startDate {
					c.JSON(http.StatusBadRequest, gin.H{"error": "end_date before start_date"})
					return
				}
			}
			update["end_date"] = *input.EndDate
		}
		if input.Start != nil {
			update["start"] = *input.Start
		}
		if input.End != nil {
			update["end"] = *input.End
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.Lat != nil && input.Lng != nil {
			update["coordinates"] = models.Coordinates{Lat: *input.Lat, Lng: *input.Lng}
		}
		if input.Price != nil {
			update["price"] = *input.Price
		}
		if input.Organizer != nil {
			update["organizer"] = *input.Organizer
		}
		if input.FacebookURL != nil {
			update["facebook_url"] = calendar.NormalizeFacebookURL(
				c.Request.Context(), normalizeClient, cfg.FBResolverEndpoint, *input.FacebookURL)
		}

		// --- Handle poster replacement ---
		form, _ := c.MultipartForm()
		if form != nil && len(form.File["poster"]) > 0 {
			fileHeader := form.File["poster"][0]
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open poster"})
				return
			}
			upload, err := utils.UploadPoster(file, fileHeader)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "poster upload failed", "details": err.Error()})
				return
			}

			// Old variants go best-effort once the new one is in place.
			utils.DeletePoster(calendar.ExtractPosterPath(&existing))

			update["poster_url"] = upload.URL
			update["poster_path"] = upload.Path
			update["resized_poster_path"] = upload.ResizedPath
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if _, err := cfg.Events().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
			return
		}

		var updated models.Event
		if err := cfg.Events().FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID := c.GetString("user_id")
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := cfg.Events().FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		if !canManage(c, &existing) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		res, err := cfg.Events().DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		utils.DeletePoster(calendar.ExtractPosterPath(&existing))

		c.JSON(http.StatusOK, gin.H{
			"message": "event deleted successfully",
			"id":      oid.Hex(),
		})
	}
}

// canManage reports whether the requester is an admin or the event's host.
func canManage(c *gin.Context, ev *models.Event) bool {
	if c.GetString("role") == "admin" {
		return true
	}
	uid := c.GetString("user_id")
	return uid != "" && ev.HostID != nil && ev.HostID.Hex() == uid
}
