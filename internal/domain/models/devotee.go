package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDevoteeNotFound is returned when no devotee has the requested public id.
var ErrDevoteeNotFound = errors.New("devotee not found")

// Devotee is a registered member of a temple.
type Devotee struct {
	ID           primitive.ObjectID `bson:"_id"`
	TempleID     string             `bson:"temple_id"`
	PublicUserID string             `bson:"public_user_id"`
	FullName     string             `bson:"full_name"`
	BirthYear    int                `bson:"birth_year,omitempty"`
	JoinedAt     time.Time          `bson:"joined_at"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// DevoteeTotals are a devotee's lifetime activity figures.
type DevoteeTotals struct {
	Checkins    int64
	LastCheckin time.Time // zero when the devotee never checked in
	Orders      int64
	Spend       decimal.Decimal
}

// DevoteeProfile is what the devotee detail page shows.
type DevoteeProfile struct {
	Devotee Devotee
	Totals  DevoteeTotals
}

// Checkin records a devotee visit.
type Checkin struct {
	ID           primitive.ObjectID `bson:"_id"`
	TempleID     string             `bson:"temple_id"`
	PublicUserID string             `bson:"public_user_id"`
	At           time.Time          `bson:"at"`
}

// Order is an offering or merchandise purchase. Amount is in the temple's
// currency major unit.
type Order struct {
	ID           primitive.ObjectID `bson:"_id"`
	TempleID     string             `bson:"temple_id"`
	PublicUserID string             `bson:"public_user_id"`
	Amount       float64            `bson:"amount"`
	At           time.Time          `bson:"at"`
}

// Interaction types recorded for engagement analytics.
const (
	InteractionPrayer   = "prayer"
	InteractionDonation = "donation"
	InteractionEvent    = "event_join"
	InteractionShare    = "share"
	InteractionMerit    = "merit_making"
)

// Interaction is an engagement event other than a check-in or order.
type Interaction struct {
	ID           primitive.ObjectID `bson:"_id"`
	TempleID     string             `bson:"temple_id"`
	PublicUserID string             `bson:"public_user_id"`
	Type         string             `bson:"type"`
	At           time.Time          `bson:"at"`
}
