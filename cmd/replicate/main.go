package main

import (
	"context"
	"flag"
	"log"
	"time"

	"video-summarizer/pkg/db"
	"video-summarizer/pkg/replication"
)

func main() {
	var (
		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
		dbName     = flag.String("db", "videosummarizer", "MongoDB database name")
		collection = flag.String("collection", "videos", "MongoDB collection holding video records")

		postgresDSN = flag.String("postgres-dsn", "", "Postgres DSN for the search replica")
		supabaseURL = flag.String("supabase-url", "", "Supabase project URL (alternative to -postgres-dsn)")
		supabaseKey = flag.String("supabase-key", "", "Supabase API key")
		supabasePwd = flag.String("supabase-password", "", "Supabase database password")

		sinceDays = flag.Int("since-days", 0, "Only replicate records updated in the last N days (0 = all)")
	)
	flag.Parse()

	ctx := context.Background()

	mongoClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := mongoClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Close(ctx)

	var provider db.DBProvider
	switch {
	case *postgresDSN != "":
		pg := db.NewPostgresClient(db.PostgresConfig{DSN: *postgresDSN})
		if err := pg.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pg.Close()
		provider = pg
	case *supabaseURL != "":
		sb := db.NewSupabaseClient(db.SupabaseConfig{
			SupabaseURL: *supabaseURL,
			SupabaseKey: *supabaseKey,
			Password:    *supabasePwd,
		})
		if err := sb.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to Supabase: %v", err)
		}
		defer sb.Close()
		if !sb.HasDirectDB() {
			log.Fatalf("Replication requires a direct database connection (provide -supabase-password)")
		}
		provider = sb
	default:
		log.Fatalf("Either -postgres-dsn or -supabase-url is required")
	}

	var since time.Time
	if *sinceDays > 0 {
		since = time.Now().AddDate(0, 0, -*sinceDays)
	}

	replicator, err := replication.NewReplicator(replication.Config{
		Mongo:    mongoClient,
		Postgres: provider,
		Since:    since,
	})
	if err != nil {
		log.Fatalf("Failed to create replicator: %v", err)
	}

	start := time.Now()
	if err := replicator.Replicate(ctx); err != nil {
		log.Fatalf("Replication failed: %v", err)
	}
	log.Printf("Done. Duration: %s", time.Since(start))
}
