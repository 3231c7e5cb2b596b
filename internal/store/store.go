// Package store persists checklist documents and type settings.
//
// Documents are keyed by (season, owner); entries inside a document are keyed
// by (name, usage). Mongo is the production backend, Memory mirrors its
// semantics for tests and dry runs.
package store

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/raidbook/raidbook/internal/checklist"
)

const (
	checklistsCollection   = "checklists"
	typeSettingsCollection = "type_settings"
)

var (
	// ErrNotFound indicates no checklist exists for the season and owner.
	ErrNotFound = errors.New("checklist not found")
	// ErrEntryNotFound indicates no entry matches the name and usage.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrExists indicates a checklist already exists for the season and owner.
	ErrExists = errors.New("checklist already exists")
)

func documentFilter(season, owner string) bson.D {
	return bson.D{
		{Key: "season", Value: season},
		{Key: "user_id", Value: owner},
	}
}

func entryFilter(season, owner, name string, role checklist.Role) bson.D {
	return append(documentFilter(season, owner), bson.E{
		Key: "pokemon",
		Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "name", Value: name},
			{Key: "usage", Value: string(role)},
		}}},
	})
}

// completedUpdate sets the completed flag on every array element matching
// the "elem" array filter.
func completedUpdate(completed bool, now time.Time) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "pokemon.$[elem].completed", Value: completed},
		{Key: "updated_at", Value: now},
	}}}
}

func elemFilter(name string, role checklist.Role) bson.D {
	return bson.D{
		{Key: "elem.name", Value: name},
		{Key: "elem.usage", Value: string(role)},
	}
}

func pushUpdate(entry checklist.Entry, now time.Time) bson.D {
	return bson.D{
		{Key: "$push", Value: bson.D{{Key: "pokemon", Value: entry}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}
}

func pullUpdate(name string, role checklist.Role, now time.Time) bson.D {
	return bson.D{
		{Key: "$pull", Value: bson.D{{Key: "pokemon", Value: bson.D{
			{Key: "name", Value: name},
			{Key: "usage", Value: string(role)},
		}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}
}

func typeSettingsFilter(season, typeName string) bson.D {
	return bson.D{
		{Key: "season", Value: season},
		{Key: "type_name", Value: typeName},
	}
}
