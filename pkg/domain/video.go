package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of a video record.
// A record is created as StatusProcessing and is mutated exactly once more,
// to StatusCompleted or StatusFailed. Terminal states are never left.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// TranscriptSegment is one caption segment with timing in seconds.
type TranscriptSegment struct {
	Text     string  `bson:"text" json:"text"`
	Start    float64 `bson:"start" json:"start"`
	Duration float64 `bson:"duration" json:"duration"`
}

// Summary is the structured output of the summarization step.
// All three fields are non-empty on a completed record; the gemini package
// substitutes fixed placeholders rather than leaving a field blank.
type Summary struct {
	Executive       string   `bson:"executive" json:"executive"`
	KeyPoints       []string `bson:"keyPoints" json:"keyPoints"`
	DetailedSummary string   `bson:"detailedSummary" json:"detailedSummary"`
}

// Video is one summarized (or in-flight) YouTube video, keyed by source URL.
// SourceURL and VideoID each carry a unique index; a second submission of the
// same URL must resolve to the existing record.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SourceURL   string             `bson:"sourceUrl" json:"youtubeUrl"`
	VideoID     string             `bson:"videoId" json:"videoId"`
	Title       string             `bson:"title" json:"title"`
	ChannelName string             `bson:"channelName" json:"channelName"`

	// DurationSeconds is the total video length parsed from the platform's
	// ISO-8601 duration token.
	DurationSeconds int `bson:"duration" json:"duration"`

	// Transcript is empty until processing completes.
	Transcript []TranscriptSegment `bson:"transcript,omitempty" json:"transcript,omitempty"`

	Summary *Summary `bson:"summary,omitempty" json:"summary,omitempty"`
	Tags    []string `bson:"tags,omitempty" json:"tags,omitempty"`

	Status Status `bson:"status" json:"status"`

	// ProcessingTimeMs is wall-clock pipeline duration, set only on success.
	ProcessingTimeMs int64 `bson:"processingTime" json:"processingTime"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
