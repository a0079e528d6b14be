package repository

import (
	"context"
	"time"

	"github.com/opikzxx/ad-catering/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCategoryRepo struct {
	DB *mongo.Client
}

func NewMongoCategoryRepo(db *mongo.Client) *MongoCategoryRepo {
	return &MongoCategoryRepo{DB: db}
}

func (r *MongoCategoryRepo) categories() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("categories")
}

func (r *MongoCategoryRepo) menus() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("menus")
}

func (r *MongoCategoryRepo) CreateCategory(category *models.Category) error {
	ctx := context.Background()

	existing, err := r.GetCategoryByName(category.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateName
	}

	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	if category.ID == 0 {
		category.ID = now.UnixNano()
	}

	_, err = r.categories().InsertOne(ctx, category)
	return err
}

func (r *MongoCategoryRepo) ListCategories(params CategoryListParams) ([]*models.Category, int, error) {
	ctx := context.Background()

	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = primitive.Regex{Pattern: params.Search, Options: "i"}
	}

	total, err := r.categories().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((params.Page - 1) * params.Limit)
	limit := int64(params.Limit)
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetSkip(skip).SetLimit(limit)

	cur, err := r.categories().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var list []*models.Category
	for cur.Next(ctx) {
		c := &models.Category{}
		if err := cur.Decode(c); err != nil {
			return nil, 0, err
		}
		count, err := r.CountMenus(c.ID)
		if err != nil {
			return nil, 0, err
		}
		c.MenuCount = count
		list = append(list, c)
	}
	return list, int(total), cur.Err()
}

func (r *MongoCategoryRepo) GetCategoryByID(id int64) (*models.Category, error) {
	ctx := context.Background()
	c := &models.Category{}

	err := r.categories().FindOne(ctx, bson.M{"_id": id}).Decode(c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	count, err := r.CountMenus(c.ID)
	if err != nil {
		return nil, err
	}
	c.MenuCount = count
	return c, nil
}

func (r *MongoCategoryRepo) GetCategoryByName(name string) (*models.Category, error) {
	ctx := context.Background()
	c := &models.Category{}

	err := r.categories().FindOne(ctx, bson.M{"name": name}).Decode(c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *MongoCategoryRepo) UpdateCategory(category *models.Category) error {
	ctx := context.Background()

	existing, err := r.GetCategoryByName(category.Name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != category.ID {
		return ErrDuplicateName
	}

	category.UpdatedAt = time.Now().UTC()
	res, err := r.categories().UpdateOne(ctx, bson.M{"_id": category.ID}, bson.M{"$set": bson.M{
		"name":       category.Name,
		"updated_at": category.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCategoryRepo) DeleteCategory(id int64) error {
	ctx := context.Background()

	count, err := r.CountMenus(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	res, err := r.categories().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCategoryRepo) CountMenus(categoryID int64) (int, error) {
	ctx := context.Background()
	count, err := r.menus().CountDocuments(ctx, bson.M{"category_id": categoryID})
	return int(count), err
}
