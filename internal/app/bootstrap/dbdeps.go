// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies for the app: the directory REST
// client and, when configured, the MongoDB audit database.
type DBDeps struct {
	API *backend.Client

	MongoClient   *mongo.Client   // nil when mongo_uri is blank
	MongoDatabase *mongo.Database // nil when mongo_uri is blank
}
