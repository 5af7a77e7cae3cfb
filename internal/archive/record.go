package archive

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublishRecord is the per-run audit trail of what was published.
type PublishRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	RunID       string             `bson:"runId"`
	Title       string             `bson:"title"`
	PostURL     string             `bson:"postUrl"`
	ImagePrompt string             `bson:"imagePrompt"`
	MediaID     int64              `bson:"mediaId,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	ItemCount   int                `bson:"itemCount"`
	PublishedAt time.Time          `bson:"publishedAt"`
}
