package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncobase/ncursor/data/mongodb/client"
	"github.com/ncobase/ncursor/data/search"
)

const defaultScanBatch = 1000

func init() {
	search.RegisterAdapterFactory(search.MongoDB, func(conn any) (search.Adapter, error) {
		cli, ok := conn.(*client.Client)
		if !ok {
			return nil, fmt.Errorf("invalid mongodb connection type: %T", conn)
		}
		return NewAdapter(cli), nil
	})
}

// Adapter adapts the MongoDB client to the search.Adapter interface. An
// index maps to a collection, text queries require a text index on the
// collection.
type Adapter struct {
	client *client.Client
}

// NewAdapter creates a new MongoDB adapter.
func NewAdapter(cli *client.Client) *Adapter {
	return &Adapter{client: cli}
}

// Type returns the engine type.
func (a *Adapter) Type() search.Engine {
	return search.MongoDB
}

// Search executes a search request. A request with Size 0 acts as a count
// probe: only the exact total is populated on the response.
func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	coll, err := a.client.Collection(req.Index)
	if err != nil {
		return nil, err
	}

	filter := buildFilter(req)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongodb count error: %w", err)
	}

	resp := &search.Response{Total: total}
	if req.Size == 0 {
		return resp, nil
	}

	idsOnly := req.Query.Fields != nil && len(req.Query.Fields) == 0

	opts := options.Find().
		SetSkip(req.From).
		SetLimit(int64(req.Size)).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	if req.Query.Fields != nil {
		projection := bson.D{}
		if idsOnly {
			projection = append(projection, bson.E{Key: "_id", Value: 1})
		} else {
			for _, f := range req.Query.Fields {
				projection = append(projection, bson.E{Key: f, Value: 1})
			}
		}
		opts.SetProjection(projection)
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb decode error: %w", err)
		}
		hit := search.Hit{ID: documentID(doc)}
		if !idsOnly {
			delete(doc, "_id")
			hit.Source = map[string]any(doc)
		}
		resp.Hits = append(resp.Hits, hit)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodb cursor error: %w", err)
	}
	return resp, nil
}

// ScanIDs streams every document identifier of a collection through one
// server side cursor, batchSize documents per round trip.
func (a *Adapter) ScanIDs(ctx context.Context, index string, batchSize int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		coll, err := a.client.Collection(index)
		if err != nil {
			yield("", err)
			return
		}
		if batchSize <= 0 {
			batchSize = defaultScanBatch
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetProjection(bson.D{{Key: "_id", Value: 1}}).
			SetBatchSize(int32(batchSize))

		cur, err := coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			yield("", fmt.Errorf("mongodb scan error: %w", err))
			return
		}
		defer cur.Close(context.Background())

		for cur.Next(ctx) {
			var doc bson.M
			if err := cur.Decode(&doc); err != nil {
				yield("", fmt.Errorf("mongodb decode error: %w", err))
				return
			}
			if !yield(documentID(doc), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield("", fmt.Errorf("mongodb cursor error: %w", err))
		}
	}
}

// Index upserts a single document keyed by its id.
func (a *Adapter) Index(ctx context.Context, req *search.IndexRequest) error {
	coll, err := a.client.Collection(req.Index)
	if err != nil {
		return err
	}

	id := req.DocumentID
	if id == "" {
		id = search.DocumentID(req.Document)
	}
	if id == "" {
		if _, err := coll.InsertOne(ctx, req.Document); err != nil {
			return fmt.Errorf("mongodb insert error: %w", err)
		}
		return nil
	}

	_, err = coll.ReplaceOne(ctx, bson.M{"_id": id}, req.Document, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// BulkIndex upserts documents in one bulk write.
func (a *Adapter) BulkIndex(ctx context.Context, index string, documents []any) error {
	if len(documents) == 0 {
		return nil
	}
	coll, err := a.client.Collection(index)
	if err != nil {
		return err
	}

	models := make([]mongo.WriteModel, 0, len(documents))
	for _, doc := range documents {
		if id := search.DocumentID(doc); id != "" {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": id}).
				SetReplacement(doc).
				SetUpsert(true))
			continue
		}
		models = append(models, mongo.NewInsertOneModel().SetDocument(doc))
	}

	if _, err := coll.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("mongodb bulk write error: %w", err)
	}
	return nil
}

// IndexExists checks whether the backing collection exists.
func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	db, err := a.client.Database()
	if err != nil {
		return false, err
	}

	names, err := db.ListCollectionNames(ctx, bson.M{"name": indexName})
	if err != nil {
		return false, fmt.Errorf("mongodb list collections error: %w", err)
	}
	return len(names) > 0, nil
}

// CreateIndex creates the backing collection and a text index over the
// searchable fields. Creating a collection that already exists is not an
// error.
func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	db, err := a.client.Database()
	if err != nil {
		return err
	}

	if err := db.CreateCollection(ctx, indexName); err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Name != "NamespaceExists" {
			return fmt.Errorf("mongodb create collection error: %w", err)
		}
	}

	if settings == nil || len(settings.SearchableFields) == 0 {
		return nil
	}

	keys := bson.D{}
	for _, f := range settings.SearchableFields {
		keys = append(keys, bson.E{Key: f, Value: "text"})
	}
	if _, err := db.Collection(indexName).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
		return fmt.Errorf("mongodb create text index error: %w", err)
	}
	return nil
}

// Health checks deployment reachability.
func (a *Adapter) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}

// buildFilter composes a find filter from the request text, the filter map
// and the kind constraint.
func buildFilter(req *search.Request) bson.M {
	filter := bson.M{}
	for field, value := range req.Query.Filter {
		filter[field] = value
	}
	if req.Kind != "" && req.Kind != search.DefaultKind {
		filter["kind"] = req.Kind
	}
	if req.Query.Text != "" {
		filter["$text"] = bson.M{"$search": req.Query.Text}
	}
	return filter
}

// documentID renders a document identifier as a string.
func documentID(doc bson.M) string {
	switch v := doc["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
