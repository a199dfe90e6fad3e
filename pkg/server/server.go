package server

import (
	"context"

	"video-summarizer/pkg/db"
	"video-summarizer/pkg/domain"
	"video-summarizer/pkg/processor"
	"video-summarizer/pkg/youtube"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the record store surface the REST façade needs.
type Store interface {
	FindByURL(ctx context.Context, sourceURL string) (*domain.Video, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	InsertVideo(ctx context.Context, video *domain.Video) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListVideos(ctx context.Context, opts db.ListOptions) ([]domain.Video, int64, error)
	Ping(ctx context.Context) error
}

// MetadataClient fetches video metadata and channel uploads from the platform.
type MetadataClient interface {
	VideoInfo(ctx context.Context, videoID string) (*youtube.VideoInfo, error)
	ChannelUploads(ctx context.Context, channelID string) ([]youtube.FeedEntry, error)
}

// Submitter hands accepted records to the background worker pool.
type Submitter interface {
	Submit(job processor.Job) error
}

// Server wires the REST façade to its collaborators.
type Server struct {
	store Store
	yt    MetadataClient
	pool  Submitter
}

// New creates a server with its dependencies injected.
func New(store Store, yt MetadataClient, pool Submitter) *Server {
	return &Server{store: store, yt: yt, pool: pool}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.POST("/summarize", s.createSummary)
	router.GET("/summaries", s.getSummaries)
	router.GET("/summary/:id", s.getSummaryByID)
	router.GET("/summary/:id/status", s.getSummaryStatus)
	router.DELETE("/summary/:id", s.deleteSummary)

	router.GET("/channel/:channelId/videos", s.channelVideos)

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
