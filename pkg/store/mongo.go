package store

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// mongoRecord is the document shape expected in a bloodline collection.
// The field names mirror the TOML herd format.
type mongoRecord struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name,omitempty"`
	Sire  string `bson:"sire,omitempty"`
	Dam   string `bson:"dam,omitempty"`
	Sex   string `bson:"sex,omitempty"`
	Year  string `bson:"year,omitempty"`
	Notes string `bson:"notes,omitempty"`
	URL   string `bson:"url,omitempty"`
}

// LoadMongo connects to uri and reads every document of the collection into
// memory. The connection is closed before LoadMongo returns: analysis runs
// entirely against the materialized records, never against the database.
//
// The fingerprint is derived from the record content (not from bytes on the
// wire), so it matches the fingerprint of an equivalent CSV or TOML export
// of the same data only by coincidence, but it is stable across reloads of
// an unchanged collection, which is all the artifact cache needs.
func LoadMongo(ctx context.Context, uri, database, collection string) (Result, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return Result{}, fmt.Errorf("connect %s: %w", uri, err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	cur, err := client.Database(database).Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return Result{}, fmt.Errorf("find %s.%s: %w", database, collection, err)
	}
	defer cur.Close(ctx)

	records := pedigree.MapStore{}
	for cur.Next(ctx) {
		var doc mongoRecord
		if err := cur.Decode(&doc); err != nil {
			return Result{}, fmt.Errorf("decode record: %w", err)
		}
		if strings.TrimSpace(doc.ID) == "" {
			continue
		}
		records.Add(pedigree.Individual{
			ID:     strings.TrimSpace(doc.ID),
			SireID: strings.TrimSpace(doc.Sire),
			DamID:  strings.TrimSpace(doc.Dam),
			Sex:    pedigree.ParseSex(strings.ToUpper(strings.TrimSpace(doc.Sex))),
			Name:   strings.TrimSpace(doc.Name),
			Year:   strings.TrimSpace(doc.Year),
			Notes:  strings.TrimSpace(doc.Notes),
			URL:    strings.TrimSpace(doc.URL),
		})
	}
	if err := cur.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate %s.%s: %w", database, collection, err)
	}

	return Result{Store: records, Fingerprint: fingerprintRecords(records)}, nil
}
