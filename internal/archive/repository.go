package archive

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	SaveRun(ctx context.Context, rec *PublishRecord) error
}

type mongoRepository struct {
	col    *mongo.Collection
	logger *log.Logger
}

func NewMongoRepository(db *mongo.Database, logger *log.Logger) (Repository, error) {
	col := db.Collection("runs")

	repo := &mongoRepository{
		col:    col,
		logger: logger,
	}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes guarantees one record per run and keeps records queryable by
// publish time.
func (r *mongoRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "runId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "publishedAt", Value: 1}},
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)

	if err != nil && r.logger != nil {
		r.logger.Printf("failed to create indexes: %v", err)
	}
	return err
}

func (r *mongoRepository) SaveRun(ctx context.Context, rec *PublishRecord) error {
	if rec.PublishedAt.IsZero() {
		rec.PublishedAt = time.Now().UTC()
	}

	_, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}

	if r.logger != nil {
		r.logger.Printf("archived run %s", rec.RunID)
	}
	return nil
}
