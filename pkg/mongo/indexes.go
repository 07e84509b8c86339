package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Product lookups by storefront id
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_product_id_unique"),
		},
	},
	// Category filter
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	// Category listings ordered by price
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "price", Value: 1},
			},
			Options: options.Index().SetName("idx_category_price"),
		},
	},
	// Full-text search
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_product_text_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "title", Value: 5},
					{Key: "description", Value: 1},
				}),
		},
	},
}

func (c *Client) EnsureIndexes(ctx context.Context) error {
	for _, idxConfig := range requiredIndexes {
		indexName, err := c.Collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			c.logger.Error("Failed to create index",
				zap.String("collection", idxConfig.CollectionName), zap.Error(err))
			return err
		}
		c.logger.Info("Created index",
			zap.String("index", indexName), zap.String("collection", idxConfig.CollectionName))
	}
	return nil
}
