package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/models"
)

const ProductsCollection = "products"

// LoadProducts reads the catalogue in product id order.
func (c *Client) LoadProducts(ctx context.Context) ([]models.ProductRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "product_id", Value: 1}})
	cursor, err := c.Collection(ProductsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.ProductRecord
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (c *Client) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	products, err := c.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("collection %s is empty; run seed-catalog first", ProductsCollection)
	}
	return catalog.FromProducts(products)
}

// SeedProducts upserts every product by product_id. It returns how many documents were inserted
// or changed.
func (c *Client) SeedProducts(ctx context.Context, products []models.ProductRecord) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	result, err := c.Collection(ProductsCollection).BulkWrite(ctx, upsertModels(products), options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	changed := result.UpsertedCount + result.ModifiedCount
	c.logger.Info("Seeded products",
		zap.Int("products", len(products)),
		zap.Int64("upserted", result.UpsertedCount),
		zap.Int64("modified", result.ModifiedCount))
	return changed, nil
}

func upsertModels(products []models.ProductRecord) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "product_id", Value: p.ID}}).
			SetReplacement(p).
			SetUpsert(true))
	}
	return writes
}
