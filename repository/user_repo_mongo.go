package repository

import (
	"context"
	"errors"
	"time"

	"github.com/opikzxx/ad-catering/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const mongoDatabase = "adcatering"

type MongoUserRepo struct {
	DB *mongo.Client
}

func NewMongoUserRepo(db *mongo.Client) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) users() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("users")
}

func (r *MongoUserRepo) CreateUser(user *models.User) error {
	ctx := context.Background()

	existing, err := r.GetUserByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	if user.Password == "" {
		return errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.ID == 0 {
		user.ID = now.UnixNano()
	}

	_, err = r.users().InsertOne(ctx, user)
	return err
}

func (r *MongoUserRepo) GetUserByEmail(email string) (*models.User, error) {
	ctx := context.Background()
	user := &models.User{}

	err := r.users().FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *MongoUserRepo) GetUserByID(id int64) (*models.User, error) {
	ctx := context.Background()
	user := &models.User{}

	err := r.users().FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
