package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	expertColl  *mongo.Collection
	studentColl *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database(config.AppConfig.MongoDBName)
	repo := &MongoUserRepo{
		expertColl:  db.Collection("experts"),
		studentColl: db.Collection("students"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create user indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the unique identity indexes on both collections.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.expertColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create expert indexes: %w", err)
	}
	if _, err := r.studentColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create student indexes: %w", err)
	}
	return nil
}

// GetExpertByID retrieves an expert by its unique ID.
func (r *MongoUserRepo) GetExpertByID(ctx context.Context, id string) (*models.Expert, error) {
	var expert models.Expert
	err := r.expertColl.FindOne(ctx, bson.M{"id": id}).Decode(&expert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expert with id %s: %w", id, err)
	}
	return &expert, nil
}

// GetStudentByID retrieves a student by its unique ID.
func (r *MongoUserRepo) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := r.studentColl.FindOne(ctx, bson.M{"id": id}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student with id %s: %w", id, err)
	}
	return &student, nil
}
