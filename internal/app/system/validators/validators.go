// Package validators installs JSON-Schema validators on the collections the
// app owns. Directory records live in the REST backend; MongoDB only holds
// the audit trail.
package validators

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/store/audit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// owned maps each collection to its schema.
var owned = map[string]func() bson.M{
	audit.CollectionName: auditEventsSchema,
}

// EnsureAll creates every owned collection that is missing and attaches its
// validator. Servers without collMod (some DocumentDB versions) skip the
// validator with a log line.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		// Fall through to create-and-handle-race.
		existing = nil
	}

	var problems []string
	for name, schema := range owned {
		if err := ensureCollection(ctx, db, name, slices.Contains(existing, name)); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		err := setValidator(ctx, db, name, schema())
		switch {
		case err == nil:
			zap.L().Info("validator ensured", zap.String("collection", name))
		case unsupported(err):
			zap.L().Info("validator skipped (unsupported)", zap.String("collection", name))
		default:
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, exists bool) error {
	if exists {
		return nil
	}
	err := db.CreateCollection(ctx, name)
	if err != nil && !commandFailed(err, 48, "already exists", "namespace exists") {
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	if err == nil {
		zap.L().Info("created collection", zap.String("collection", name))
	}
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

// unsupported reports a server that has no collMod or no validators.
func unsupported(err error) bool {
	return commandFailed(err, 59, "no such command") ||
		commandFailed(err, 115, "not implemented", "not supported")
}

// commandFailed matches a Mongo command error by code, or any error by a
// lower-case phrase in its text.
func commandFailed(err error, code int32, phrases ...string) bool {
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

func auditEventsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"timestamp", "category", "event_type", "success"},
			"properties": bson.M{
				"timestamp":  bson.M{"bsonType": "date"},
				"category":   bson.M{"enum": bson.A{audit.CategoryAuth, audit.CategoryAdmin}},
				"event_type": bson.M{"bsonType": "string", "minLength": 1},
				"user_id":    bson.M{"bsonType": bson.A{"long", "int"}},
				"actor_id":   bson.M{"bsonType": bson.A{"long", "int"}},
				"entity": bson.M{"enum": bson.A{
					"state", "diocese", "parish", "adoration", "crusade", "user",
				}},
				"entity_id":      bson.M{"bsonType": bson.A{"long", "int"}},
				"email":          bson.M{"bsonType": "string"},
				"ip":             bson.M{"bsonType": "string"},
				"success":        bson.M{"bsonType": "bool"},
				"failure_reason": bson.M{"bsonType": "string"},
				"details":        bson.M{"bsonType": "object"},
			},
		},
	}
}
