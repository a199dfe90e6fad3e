package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"video-summarizer/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no video record.
// Callers must treat it distinctly from store failures (it maps to 404, not 500).
var ErrNotFound = errors.New("video not found")

// Client wraps the MongoDB client and the videos collection
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// Ping verifies the connection is still alive (used by the health endpoint).
func (c *Client) Ping(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// EnsureIndexes creates the indexes the store relies on. The unique indexes on
// sourceUrl and videoId are the only guard against two near-simultaneous
// submissions of the same URL racing past the duplicate-check read.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sourceUrl", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "videoId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := c.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// IsDuplicateKey reports whether err is a uniqueness violation on insert.
// The submission handler treats this as "already exists", not a hard error.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// InsertVideo inserts a new video record and fills in its assigned ID and
// timestamps. A colliding sourceUrl/videoId fails with a duplicate key error.
func (c *Client) InsertVideo(ctx context.Context, video *domain.Video) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now
	if video.Status == "" {
		video.Status = domain.StatusProcessing
	}

	res, err := c.collection.InsertOne(ctx, video)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		video.ID = oid
	}
	return nil
}

// FindByURL returns the record for a source URL, or ErrNotFound.
func (c *Client) FindByURL(ctx context.Context, sourceURL string) (*domain.Video, error) {
	return c.findOne(ctx, bson.M{"sourceUrl": sourceURL})
}

// FindByID returns the record with the given ID, or ErrNotFound.
func (c *Client) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c *Client) findOne(ctx context.Context, filter bson.M) (*domain.Video, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	var video domain.Video
	err := c.collection.FindOne(ctx, filter).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}
	return &video, nil
}

// UpdateByID sets the given fields on a record and refreshes updatedAt.
// Returns ErrNotFound if no record has that ID.
func (c *Client) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return c.update(ctx, bson.M{"_id": id}, fields)
}

// UpdateProcessing sets the given fields only while the record is still in
// "processing" state. A record already in a terminal state is left untouched
// and ErrNotFound is returned, which keeps status transitions monotonic even
// if a stale background job fires late.
func (c *Client) UpdateProcessing(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return c.update(ctx, bson.M{"_id": id, "status": domain.StatusProcessing}, fields)
}

func (c *Client) update(ctx context.Context, filter, fields bson.M) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := c.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteVideo writes the pipeline results and flips the record to completed
// in one update. It only applies while the record is still processing.
func (c *Client) CompleteVideo(ctx context.Context, id primitive.ObjectID, transcript []domain.TranscriptSegment, summary domain.Summary, tags []string, elapsed time.Duration) error {
	return c.UpdateProcessing(ctx, id, bson.M{
		"transcript":     transcript,
		"summary":        summary,
		"tags":           tags,
		"status":         domain.StatusCompleted,
		"processingTime": elapsed.Milliseconds(),
	})
}

// FailVideo flips the record to failed. Status is the only field touched;
// whatever was written before the failing step stays as it was.
func (c *Client) FailVideo(ctx context.Context, id primitive.ObjectID) error {
	return c.UpdateProcessing(ctx, id, bson.M{"status": domain.StatusFailed})
}

// DeleteByID removes a record. The bool reports whether anything was deleted.
func (c *Client) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if c.collection == nil {
		return false, fmt.Errorf("collection not initialized")
	}

	res, err := c.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ListOptions controls the paginated query over video records.
type ListOptions struct {
	Page   int
	Limit  int
	Status string // exact status match when non-empty
	Search string // case-insensitive match against title, channel, or tags
}

// ListVideos returns one page of records, newest first, plus the total count
// for the filter. The transcript field is projected out to bound response size.
func (c *Client) ListVideos(ctx context.Context, opts ListOptions) ([]domain.Video, int64, error) {
	if c.collection == nil {
		return nil, 0, fmt.Errorf("collection not initialized")
	}

	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.Search != "" {
		// QuoteMeta so a user search term is matched literally inside $regex.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"channelName": pattern},
			bson.M{"tags": pattern},
		}
	}

	total, err := c.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	skip := int64(opts.Page-1) * int64(opts.Limit)
	findOpts := options.Find().
		SetProjection(bson.M{"transcript": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(opts.Limit))

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("query videos: %w", err)
	}
	defer cursor.Close(ctx)

	videos := make([]domain.Video, 0, opts.Limit)
	for cursor.Next(ctx) {
		var video domain.Video
		if err := cursor.Decode(&video); err != nil {
			continue // Skip invalid documents
		}
		videos = append(videos, video)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %w", err)
	}

	return videos, total, nil
}

// CompletedSince returns completed records updated at or after the given time.
// Used by the replication flow.
func (c *Client) CompletedSince(ctx context.Context, since time.Time) ([]domain.Video, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	filter := bson.M{
		"status":    domain.StatusCompleted,
		"updatedAt": bson.M{"$gte": since},
	}

	cursor, err := c.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query completed videos: %w", err)
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	for cursor.Next(ctx) {
		var video domain.Video
		if err := cursor.Decode(&video); err != nil {
			continue
		}
		videos = append(videos, video)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return videos, nil
}
