// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. Both fields are
// nil when the analytics source is "mock".
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
