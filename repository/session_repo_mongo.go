package repository

import (
	"context"
	"time"

	"github.com/opikzxx/ad-catering/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoSessionRepo struct {
	DB *mongo.Client
}

func NewMongoSessionRepo(db *mongo.Client) *MongoSessionRepo {
	return &MongoSessionRepo{DB: db}
}

func (r *MongoSessionRepo) sessions() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("sessions")
}

func (r *MongoSessionRepo) CreateSession(session *models.Session) error {
	ctx := context.Background()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	_, err := r.sessions().InsertOne(ctx, session)
	return err
}

func (r *MongoSessionRepo) GetSession(token string) (*models.Session, error) {
	ctx := context.Background()
	session := &models.Session{}

	err := r.sessions().FindOne(ctx, bson.M{
		"_id":        token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(session)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return session, nil
}

func (r *MongoSessionRepo) DeleteSession(token string) error {
	ctx := context.Background()
	_, err := r.sessions().DeleteOne(ctx, bson.M{"_id": token})
	return err
}

func (r *MongoSessionRepo) DeleteSessionsForUser(userID int64) error {
	ctx := context.Background()
	_, err := r.sessions().DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
