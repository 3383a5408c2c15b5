package pitchRepo

import (
	"context"
	"fmt"
	"time"

	"pitchbook/database"
	"pitchbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPitchRepo implements PitchRepository using MongoDB.
type MongoPitchRepo struct {
	coll *mongo.Collection
}

// NewMongoPitchRepo creates a new instance of PitchRepository using MongoDB.
func NewMongoPitchRepo() PitchRepository {
	coll := database.MongoClient.Database("pitchbook").Collection("pitches")
	return &MongoPitchRepo{coll: coll}
}

func (r *MongoPitchRepo) GetAll() ([]models.Pitch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pitches: %w", err)
	}
	defer cursor.Close(ctx)
	var pitches []models.Pitch
	for cursor.Next(ctx) {
		var p models.Pitch
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode pitch: %w", err)
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}
