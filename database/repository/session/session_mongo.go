package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorhub/config"
	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll     *mongo.Collection
	lockColl *mongo.Collection
}

// NewMongoSessionRepo creates a new SessionRepository backed by MongoDB.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database(config.AppConfig.MongoDBName)
	repo := &MongoSessionRepo{
		coll:     db.Collection("sessions"),
		lockColl: db.Collection("expert_locks"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expert_id", Value: 1}, {Key: "start_at", Value: 1}, {Key: "end_at", Value: 1}}},
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "start_at", Value: 1}, {Key: "end_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	lockIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expert_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.lockColl.Indexes().CreateOne(ctx, lockIndex); err != nil {
		return fmt.Errorf("failed to create lock index: %w", err)
	}
	return nil
}

// FindBookedSlot looks up the session matching the idempotency key
// (expert, student, start, end, status BOOKED). Returns nil when absent.
func (r *MongoSessionRepo) FindBookedSlot(ctx context.Context, expertID, studentID string, start, end time.Time) (*models.Session, error) {
	filter := bson.M{
		"expert_id":  expertID,
		"student_id": studentID,
		"start_at":   start,
		"end_at":     end,
		"status":     models.StatusBooked,
	}

	var session models.Session
	err := r.coll.FindOne(ctx, filter).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up booked slot: %w", err)
	}
	return &session, nil
}

// HasActiveOverlap checks for an active session of the expert whose range
// strictly intersects [start, end), excluding the given student's own
// sessions so idempotent re-booking never collides with itself.
func (r *MongoSessionRepo) HasActiveOverlap(ctx context.Context, expertID, excludeStudentID string, start, end time.Time) (bool, error) {
	filter := bson.M{
		"expert_id":  expertID,
		"student_id": bson.M{"$ne": excludeStudentID},
		"status":     bson.M{"$in": models.ActiveStatuses},
		"start_at":   bson.M{"$lt": end},
		"end_at":     bson.M{"$gt": start},
	}

	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", err)
	}
	return true, nil
}

// Create inserts a new session record.
func (r *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its unique ID.
func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &session, nil
}

// Transition performs a status-guarded update on a single session record.
// The filter carries the allowed source states, so a concurrent transition
// that got there first makes this one miss and return ErrNotFound instead
// of silently overwriting.
func (r *MongoSessionRepo) Transition(ctx context.Context, id string, from []models.SessionStatus, to models.SessionStatus, at time.Time) (*models.Session, error) {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": from},
	}

	set := bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	switch to {
	case models.StatusJoined:
		set["joined_at"] = at
	case models.StatusCompleted:
		set["ended_at"] = at
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var session models.Session
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition session %s to %s: %w", id, to, err)
	}
	return &session, nil
}

// SetSummary stores the generated summary text for a session.
func (r *MongoSessionRepo) SetSummary(ctx context.Context, id, summary string) error {
	update := bson.M{"$set": bson.M{
		"summary":    summary,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to store summary for session %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
