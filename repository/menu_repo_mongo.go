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

type MongoMenuRepo struct {
	DB *mongo.Client
}

func NewMongoMenuRepo(db *mongo.Client) *MongoMenuRepo {
	return &MongoMenuRepo{DB: db}
}

func (r *MongoMenuRepo) menus() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("menus")
}

func (r *MongoMenuRepo) categories() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("categories")
}

func (r *MongoMenuRepo) CreateMenu(menu *models.Menu) error {
	ctx := context.Background()

	now := time.Now().UTC()
	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = now
	}
	menu.UpdatedAt = now
	if menu.Status == "" {
		menu.Status = models.MenuStatusDraft
	}
	if menu.ID == 0 {
		menu.ID = now.UnixNano()
	}

	_, err := r.menus().InsertOne(ctx, menu)
	return err
}

func (r *MongoMenuRepo) ListMenus(params MenuListParams) ([]*models.Menu, int, error) {
	ctx := context.Background()

	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = primitive.Regex{Pattern: params.Search, Options: "i"}
	}
	if params.CategoryID != 0 {
		filter["category_id"] = params.CategoryID
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}

	total, err := r.menus().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((params.Page - 1) * params.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(params.Limit))

	cur, err := r.menus().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var list []*models.Menu
	for cur.Next(ctx) {
		m := &models.Menu{}
		if err := cur.Decode(m); err != nil {
			return nil, 0, err
		}
		if err := r.fillCategoryName(ctx, m); err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, int(total), cur.Err()
}

func (r *MongoMenuRepo) GetMenuByID(id int64) (*models.Menu, error) {
	ctx := context.Background()
	m := &models.Menu{}

	err := r.menus().FindOne(ctx, bson.M{"_id": id}).Decode(m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	if err := r.fillCategoryName(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MongoMenuRepo) UpdateMenu(menu *models.Menu) error {
	ctx := context.Background()

	menu.UpdatedAt = time.Now().UTC()
	res, err := r.menus().UpdateOne(ctx, bson.M{"_id": menu.ID}, bson.M{"$set": bson.M{
		"name":             menu.Name,
		"description":      menu.Description,
		"price":            menu.Price,
		"discounted_price": menu.DiscountedPrice,
		"discount_percent": menu.DiscountPercent,
		"status":           menu.Status,
		"image_url":        menu.ImageURL,
		"image_key":        menu.ImageKey,
		"image_alt":        menu.ImageAlt,
		"category_id":      menu.CategoryID,
		"updated_at":       menu.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoMenuRepo) DeleteMenu(id int64) error {
	ctx := context.Background()
	res, err := r.menus().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoMenuRepo) PublicCatalog(categoryName string) ([]*models.CategoryWithMenus, error) {
	ctx := context.Background()

	filter := bson.M{"status": models.MenuStatusPublished}
	if categoryName != "" {
		cat := &models.Category{}
		err := r.categories().FindOne(ctx, bson.M{
			"name": primitive.Regex{Pattern: "^" + categoryName + "$", Options: "i"},
		}).Decode(cat)
		if err == mongo.ErrNoDocuments {
			return []*models.CategoryWithMenus{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter["category_id"] = cat.ID
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.menus().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	catalog := []*models.CategoryWithMenus{}
	index := map[int64]*models.CategoryWithMenus{}
	for cur.Next(ctx) {
		m := &models.Menu{}
		if err := cur.Decode(m); err != nil {
			return nil, err
		}
		if err := r.fillCategoryName(ctx, m); err != nil {
			return nil, err
		}
		entry, ok := index[m.CategoryID]
		if !ok {
			entry = &models.CategoryWithMenus{ID: m.CategoryID, Name: m.CategoryName}
			index[m.CategoryID] = entry
			catalog = append(catalog, entry)
		}
		entry.Menus = append(entry.Menus, m)
	}
	return catalog, cur.Err()
}

func (r *MongoMenuRepo) fillCategoryName(ctx context.Context, m *models.Menu) error {
	cat := &models.Category{}
	err := r.categories().FindOne(ctx, bson.M{"_id": m.CategoryID}).Decode(cat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}
	m.CategoryName = cat.Name
	return nil
}
