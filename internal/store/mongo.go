package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/raidbook/raidbook/internal/checklist"
)

// ServerSelectionTimeout bounds how long Open waits for a reachable server.
const ServerSelectionTimeout = 5 * time.Second

// Mongo stores checklists in a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
	now    func() time.Time
}

// Open connects to uri, verifies the connection, and ensures the checklist
// indexes exist.
func Open(ctx context.Context, uri, database string, logger *zap.Logger) (*Mongo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(ServerSelectionTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m := &Mongo{
		client: client,
		db:     client.Database(database),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	m.ensureIndexes(ctx)
	logger.Debug("connected to MongoDB", zap.String("database", database))
	return m, nil
}

// ensureIndexes creates the lookup indexes. Failures are logged, not fatal:
// an existing database with conflicting data should still be readable.
func (m *Mongo) ensureIndexes(ctx context.Context) {
	coll := m.db.Collection(checklistsCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "season", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		m.logger.Warn("failed to create season+user_id index", zap.Error(err))
	}

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "pokemon.name", Value: 1}},
	})
	if err != nil {
		m.logger.Warn("failed to create pokemon.name index", zap.Error(err))
	}
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) checklists() *mongo.Collection {
	return m.db.Collection(checklistsCollection)
}

// List returns every checklist ordered by season and owner.
func (m *Mongo) List(ctx context.Context) ([]checklist.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "season", Value: 1}, {Key: "user_id", Value: 1}})
	cur, err := m.checklists().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	var docs []checklist.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode checklists: %w", err)
	}
	return docs, nil
}

// Get returns the checklist for season and owner.
func (m *Mongo) Get(ctx context.Context, season, owner string) (*checklist.Document, error) {
	var doc checklist.Document
	err := m.checklists().FindOne(ctx, documentFilter(season, owner)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find checklist %s/%s: %w", season, owner, err)
	}
	return &doc, nil
}

// Insert stores a new checklist. It fails with ErrExists if one is already
// stored for the same season and owner.
func (m *Mongo) Insert(ctx context.Context, doc checklist.Document) error {
	_, err := m.checklists().InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrExists
	}
	if err != nil {
		return fmt.Errorf("insert checklist %s/%s: %w", doc.Season, doc.Owner, err)
	}
	m.logger.Debug("inserted checklist", zap.String("season", doc.Season), zap.Int("entries", len(doc.Entries)))
	return nil
}

// Replace overwrites the stored checklist with the same season and owner.
func (m *Mongo) Replace(ctx context.Context, doc checklist.Document) error {
	res, err := m.checklists().ReplaceOne(ctx, documentFilter(doc.Season, doc.Owner), doc)
	if err != nil {
		return fmt.Errorf("replace checklist %s/%s: %w", doc.Season, doc.Owner, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	m.logger.Debug("replaced checklist", zap.String("season", doc.Season), zap.Int("entries", len(doc.Entries)))
	return nil
}

// SetCompleted sets the completed flag of the entry keyed by name and role
// and returns the updated entry.
func (m *Mongo) SetCompleted(ctx context.Context, season, owner, name string, role checklist.Role, completed bool) (*checklist.Entry, error) {
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{elemFilter(name, role)},
	})
	res, err := m.checklists().UpdateOne(ctx, entryFilter(season, owner, name, role), completedUpdate(completed, m.now()), opts)
	if err != nil {
		return nil, fmt.Errorf("update %s (%s): %w", name, role, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrEntryNotFound
	}

	doc, err := m.Get(ctx, season, owner)
	if err != nil {
		return nil, err
	}
	i := doc.Find(name, role)
	if i < 0 {
		return nil, ErrEntryNotFound
	}
	m.logger.Debug("set completed", zap.String("name", name), zap.String("usage", string(role)), zap.Bool("completed", completed))
	return &doc.Entries[i], nil
}

// AddEntry appends an entry, creating the checklist if it does not exist.
// It reports whether a new checklist was created.
func (m *Mongo) AddEntry(ctx context.Context, season, owner string, entry checklist.Entry) (bool, error) {
	opts := options.Update().SetUpsert(true)
	res, err := m.checklists().UpdateOne(ctx, documentFilter(season, owner), pushUpdate(entry, m.now()), opts)
	if err != nil {
		return false, fmt.Errorf("add %s (%s): %w", entry.Name, entry.Role, err)
	}
	return res.UpsertedCount > 0, nil
}

// RemoveEntry deletes the entry keyed by name and role.
func (m *Mongo) RemoveEntry(ctx context.Context, season, owner, name string, role checklist.Role) error {
	res, err := m.checklists().UpdateOne(ctx, entryFilter(season, owner, name, role), pullUpdate(name, role, m.now()))
	if err != nil {
		return fmt.Errorf("remove %s (%s): %w", name, role, err)
	}
	if res.MatchedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// TypeSettings returns the settings stored for season.
func (m *Mongo) TypeSettings(ctx context.Context, season string) ([]checklist.TypeSettings, error) {
	opts := options.Find().SetSort(bson.D{{Key: "type_name", Value: 1}})
	cur, err := m.db.Collection(typeSettingsCollection).Find(ctx, bson.D{{Key: "season", Value: season}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list type settings: %w", err)
	}
	var settings []checklist.TypeSettings
	if err := cur.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("decode type settings: %w", err)
	}
	return settings, nil
}

// SaveTypeSettings creates or replaces the settings for one type.
func (m *Mongo) SaveTypeSettings(ctx context.Context, ts checklist.TypeSettings) error {
	ts.UpdatedAt = m.now()
	opts := options.Replace().SetUpsert(true)
	_, err := m.db.Collection(typeSettingsCollection).ReplaceOne(ctx, typeSettingsFilter(ts.Season, ts.TypeName), ts, opts)
	if err != nil {
		return fmt.Errorf("save type settings %s/%s: %w", ts.Season, ts.TypeName, err)
	}
	return nil
}
