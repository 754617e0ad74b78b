// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	contactstore "github.com/edumanage/schoolsite/internal/app/store/contacts"
	statsstore "github.com/edumanage/schoolsite/internal/app/store/stats"
	testimonialstore "github.com/edumanage/schoolsite/internal/app/store/testimonials"
	"github.com/edumanage/schoolsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(contactstore.Collection, contactsSchema())
	ensure(testimonialstore.Collection, testimonialsSchema())
	ensure(statsstore.Collection, statsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if it was actually created here.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrMatches(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	integer  = bson.A{"int", "long"}
	number   = bson.A{"double", "int", "long", "decimal"}
)

func text(min, max int) bson.M {
	return bson.M{"bsonType": "string", "minLength": min, "maxLength": max, "pattern": ".*\\S.*"}
}

func contactsSchema() bson.M {
	statuses := make(bson.A, 0, len(models.ContactStatuses))
	for _, s := range models.ContactStatuses {
		statuses = append(statuses, string(s))
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "name", "email", "message", "status", "created_at", "updated_at"},
			"properties": bson.M{
				"_id":        nonBlank,
				"name":       text(1, 100),
				"email":      bson.M{"bsonType": "string", "minLength": 5, "maxLength": 100},
				"school":     bson.M{"bsonType": bson.A{"string", "null"}, "maxLength": 100},
				"phone":      bson.M{"bsonType": bson.A{"string", "null"}, "maxLength": 20},
				"message":    text(1, 1000),
				"status":     bson.M{"enum": statuses},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func testimonialsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "text", "author", "role", "school", "rating", "is_active", "created_at"},
			"properties": bson.M{
				"_id":        nonBlank,
				"text":       text(10, 500),
				"author":     text(1, 100),
				"role":       text(1, 100),
				"school":     text(1, 100),
				"rating":     bson.M{"bsonType": integer, "minimum": 1, "maximum": 5},
				"is_active":  bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func statsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"total_schools", "total_students", "total_teachers", "average_satisfaction", "last_updated"},
			"properties": bson.M{
				"_id":                  bson.M{"enum": bson.A{models.StatsID}},
				"total_schools":        bson.M{"bsonType": integer, "minimum": 0},
				"total_students":       bson.M{"bsonType": integer, "minimum": 0},
				"total_teachers":       bson.M{"bsonType": integer, "minimum": 0},
				"average_satisfaction": bson.M{"bsonType": number, "minimum": 0, "maximum": 5},
				"last_updated":         bson.M{"bsonType": "date"},
			},
		},
	}
}
