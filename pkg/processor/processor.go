package processor

import (
	"context"
	"log"
	"time"

	"video-summarizer/pkg/domain"
	"video-summarizer/pkg/metrics"
	"video-summarizer/pkg/youtube"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the slice of the record store the pipeline needs. Both updates are
// conditional on the record still being in processing state, which is what
// keeps status transitions monotonic.
type Store interface {
	CompleteVideo(ctx context.Context, id primitive.ObjectID, transcript []domain.TranscriptSegment, summary domain.Summary, tags []string, elapsed time.Duration) error
	FailVideo(ctx context.Context, id primitive.ObjectID) error
}

// TranscriptFetcher fetches raw caption segments for a platform video ID.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, videoID string) ([]youtube.Segment, error)
}

// Summarizer produces a structured summary from a transcript.
type Summarizer interface {
	GenerateSummary(ctx context.Context, title, channel, transcript string) (domain.Summary, error)
}

// Tagger produces tags from the executive summary. It never fails; a model
// error yields an empty list.
type Tagger interface {
	GenerateTags(ctx context.Context, title, channel, executive string) []string
}

// Job identifies one record to process plus the metadata already fetched
// during submission.
type Job struct {
	RecordID    primitive.ObjectID
	VideoID     string
	Title       string
	ChannelName string
}

// Processor runs the per-record pipeline: transcript, summary, tags, one
// completion update. It is detached from the request cycle; its outcome is
// only observable through the record's status field.
type Processor struct {
	store       Store
	transcripts TranscriptFetcher
	summarizer  Summarizer
	tagger      Tagger
}

// NewProcessor creates a processor with its collaborators injected.
func NewProcessor(store Store, transcripts TranscriptFetcher, summarizer Summarizer, tagger Tagger) *Processor {
	return &Processor{
		store:       store,
		transcripts: transcripts,
		summarizer:  summarizer,
		tagger:      tagger,
	}
}

// Process runs the pipeline for one record. Steps are strictly sequential.
// Any failure, including a panic, flips the record to failed with a
// status-only update; errors are logged and never surface to the submitter.
func (p *Processor) Process(ctx context.Context, job Job) {
	start := time.Now()
	completed := false

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic processing video %s: %v", job.VideoID, r)
		}
		if completed {
			return
		}
		metrics.RecordFailed()
		if err := p.store.FailVideo(ctx, job.RecordID); err != nil {
			log.Printf("Failed to mark video %s as failed: %v", job.VideoID, err)
		}
	}()

	segments, err := p.transcripts.Transcript(ctx, job.VideoID)
	if err != nil {
		log.Printf("Error processing video %s: %v", job.VideoID, err)
		return
	}

	fullTranscript := youtube.FullText(segments)

	summary, err := p.summarizer.GenerateSummary(ctx, job.Title, job.ChannelName, fullTranscript)
	if err != nil {
		log.Printf("Error processing video %s: %v", job.VideoID, err)
		return
	}

	tags := p.tagger.GenerateTags(ctx, job.Title, job.ChannelName, summary.Executive)

	elapsed := time.Since(start)
	if err := p.store.CompleteVideo(ctx, job.RecordID, youtube.Normalize(segments), summary, tags, elapsed); err != nil {
		log.Printf("Error saving results for video %s: %v", job.VideoID, err)
		return
	}

	completed = true
	metrics.RecordCompleted(elapsed)
	log.Printf("Video %s processed successfully in %s", job.VideoID, elapsed)
}
