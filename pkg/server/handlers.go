package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"video-summarizer/pkg/db"
	"video-summarizer/pkg/domain"
	"video-summarizer/pkg/metrics"
	"video-summarizer/pkg/processor"
	"video-summarizer/pkg/youtube"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type summarizeRequest struct {
	YoutubeURL string `json:"youtubeUrl" binding:"required,url"`
}

// createSummary accepts a YouTube URL, creates a processing record, and hands
// it to the background pool. A URL that was already submitted returns the
// existing record with 200 instead of 202.
func (s *Server) createSummary(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordSubmission("rejected")
		respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	videoID, err := youtube.ExtractVideoID(req.YoutubeURL)
	if err != nil {
		metrics.RecordSubmission("rejected")
		respondError(c, http.StatusBadRequest, "Validation failed", "Must be a valid YouTube URL")
		return
	}

	// Check if video already exists
	if existing, err := s.store.FindByURL(c.Request.Context(), req.YoutubeURL); err == nil {
		metrics.RecordSubmission("duplicate")
		respondData(c, http.StatusOK, "Video already summarized", existing)
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		respondError(c, http.StatusInternalServerError, "Failed to create summary")
		return
	}

	info, err := s.yt.VideoInfo(c.Request.Context(), videoID)
	if err != nil {
		metrics.RecordSubmission("failed")
		respondError(c, http.StatusInternalServerError, "Failed to get video info: "+err.Error())
		return
	}

	video := &domain.Video{
		SourceURL:       req.YoutubeURL,
		VideoID:         info.VideoID,
		Title:           info.Title,
		ChannelName:     info.ChannelName,
		DurationSeconds: info.DurationSeconds,
		Status:          domain.StatusProcessing,
	}

	if err := s.store.InsertVideo(c.Request.Context(), video); err != nil {
		// Two near-simultaneous submissions can race past the duplicate check;
		// the unique index rejects the second insert and we return the winner.
		if db.IsDuplicateKey(err) {
			if existing, ferr := s.store.FindByURL(c.Request.Context(), req.YoutubeURL); ferr == nil {
				metrics.RecordSubmission("duplicate")
				respondData(c, http.StatusOK, "Video already summarized", existing)
				return
			}
		}
		respondError(c, http.StatusInternalServerError, "Failed to create summary")
		return
	}

	job := processor.Job{
		RecordID:    video.ID,
		VideoID:     info.VideoID,
		Title:       info.Title,
		ChannelName: info.ChannelName,
	}
	if err := s.pool.Submit(job); err != nil {
		// Don't strand a processing record no worker will ever pick up.
		if _, derr := s.store.DeleteByID(c.Request.Context(), video.ID); derr != nil {
			log.Printf("Failed to remove unqueued record %s: %v", video.ID.Hex(), derr)
		}
		metrics.RecordSubmission("rejected")
		respondError(c, http.StatusServiceUnavailable, "Processing queue is full, try again later")
		return
	}

	metrics.RecordSubmission("accepted")
	respondData(c, http.StatusAccepted, "Video processing started", gin.H{
		"id":      video.ID.Hex(),
		"status":  video.Status,
		"videoId": video.VideoID,
		"title":   video.Title,
	})
}

// getSummaries returns one page of records with pagination metadata.
// The transcript field is omitted from list results.
func (s *Server) getSummaries(c *gin.Context) {
	opts, errs := parseListOptions(c)
	if len(errs) > 0 {
		respondError(c, http.StatusBadRequest, "Validation failed", errs...)
		return
	}

	videos, total, err := s.store.ListVideos(c.Request.Context(), opts)
	if err != nil {
		log.Printf("Error getting summaries: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to get summaries")
		return
	}

	pages := (total + int64(opts.Limit) - 1) / int64(opts.Limit)
	respondData(c, http.StatusOK, "", gin.H{
		"videos": videos,
		"pagination": gin.H{
			"page":  opts.Page,
			"limit": opts.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

func parseListOptions(c *gin.Context) (db.ListOptions, []string) {
	opts := db.ListOptions{Page: 1, Limit: 10, Search: c.Query("search")}
	var errs []string

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			errs = append(errs, "Page must be a positive integer")
		} else {
			opts.Page = page
		}
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 100 {
			errs = append(errs, "Limit must be between 1 and 100")
		} else {
			opts.Limit = limit
		}
	}
	if v := c.Query("status"); v != "" {
		if !domain.ValidStatus(v) {
			errs = append(errs, "Status must be processing, completed, or failed")
		} else {
			opts.Status = v
		}
	}

	return opts, errs
}

// recordID parses the :id path parameter; a malformed ID is a validation error.
func recordID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid video ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (s *Server) getSummaryByID(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	video, err := s.store.FindByID(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Video summary not found")
		return
	}
	if err != nil {
		log.Printf("Error getting summary by ID: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to get summary")
		return
	}

	respondData(c, http.StatusOK, "", video)
}

func (s *Server) getSummaryStatus(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	video, err := s.store.FindByID(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		log.Printf("Error getting summary status: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to get status")
		return
	}

	respondData(c, http.StatusOK, "", gin.H{
		"id":             video.ID.Hex(),
		"status":         video.Status,
		"processingTime": video.ProcessingTimeMs,
		"title":          video.Title,
	})
}

func (s *Server) deleteSummary(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error deleting summary: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete summary")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Video summary not found")
		return
	}

	respondData(c, http.StatusOK, "Summary deleted successfully", nil)
}

// channelVideos lists a channel's latest uploads so clients can pick videos
// to submit. Served from the public channel feed, no API key involved.
func (s *Server) channelVideos(c *gin.Context) {
	entries, err := s.yt.ChannelUploads(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		respondError(c, http.StatusBadGateway, "Failed to fetch channel uploads: "+err.Error())
		return
	}
	respondData(c, http.StatusOK, "", gin.H{"videos": entries})
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondData(c, http.StatusOK, "ok", nil)
}
