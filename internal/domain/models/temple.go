package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Temple is an administered temple; TempleID is the stable slug used in URLs.
type Temple struct {
	ID        primitive.ObjectID `bson:"_id"`
	TempleID  string             `bson:"temple_id"`
	Name      string             `bson:"name"`
	NameCI    string             `bson:"name_ci"`
	Province  string             `bson:"province,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}
