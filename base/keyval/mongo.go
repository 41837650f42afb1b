package keyval

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

type mongoDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"v"`
}

// NewMongo connects a mongo-backed Store. Each table maps to a collection
// keyed by _id, which gives the ordered iteration the store contract needs.
func NewMongo(c ctx.Ctx, uri, dbName string) (Store, error) {
	connectCtx, cancel := ctx.WithTimeout(c, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "uri": uri}).Error("mongo connect failed")
		return nil, xerrors.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		c.WithFields(log.Fields{"err": err, "uri": uri}).Error("mongo ping failed")
		return nil, xerrors.Errorf("ping mongo: %w", err)
	}
	return &mongoStore{client: client, db: client.Database(dbName)}, nil
}

func (m *mongoStore) Get(c ctx.Ctx, table, key string) ([]byte, error) {
	var doc mongoDoc
	err := m.db.Collection(table).FindOne(c, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table, "key": key}).Error("mongo get failed")
		return nil, err
	}
	return doc.Value, nil
}

func (m *mongoStore) Put(c ctx.Ctx, table, key string, value []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.db.Collection(table).ReplaceOne(c, bson.M{"_id": key}, mongoDoc{Key: key, Value: value}, opts)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table, "key": key}).Error("mongo put failed")
	}
	return err
}

func (m *mongoStore) Delete(c ctx.Ctx, table, key string) error {
	_, err := m.db.Collection(table).DeleteOne(c, bson.M{"_id": key})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table, "key": key}).Error("mongo delete failed")
	}
	return err
}

func (m *mongoStore) RangeScan(c ctx.Ctx, table string, opts ...RangeOptionsFunc) ([]Entry, error) {
	rangeOptions := GetRangeOptions(opts...)

	filter := bson.M{}
	idFilter := bson.M{}
	if rangeOptions.Start != nil {
		idFilter["$gte"] = *rangeOptions.Start
	}
	if rangeOptions.End != nil {
		idFilter["$lt"] = *rangeOptions.End
	}
	if len(idFilter) > 0 {
		filter["_id"] = idFilter
	}

	sortDir := 1
	if rangeOptions.Reverse {
		sortDir = -1
	}
	findOpts := options.Find().SetSort(bson.M{"_id": sortDir})
	if rangeOptions.Limit != nil {
		findOpts.SetLimit(int64(*rangeOptions.Limit))
	}

	cursor, err := m.db.Collection(table).Find(c, filter, findOpts)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("mongo range scan failed")
		return nil, err
	}
	defer cursor.Close(c)

	res := []Entry{}
	for cursor.Next(c) {
		var doc mongoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		res = append(res, Entry{Key: doc.Key, Value: doc.Value})
	}
	return res, cursor.Err()
}

func (m *mongoStore) Close() error {
	return m.client.Disconnect(ctx.Background())
}
