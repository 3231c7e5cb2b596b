package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/raidbook/raidbook/internal/audit"
	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/store"
)

// checklistStore is the store surface the commands use. store.Mongo backs it
// in production and store.Memory in tests.
type checklistStore interface {
	List(ctx context.Context) ([]checklist.Document, error)
	Get(ctx context.Context, season, owner string) (*checklist.Document, error)
	Insert(ctx context.Context, doc checklist.Document) error
	Replace(ctx context.Context, doc checklist.Document) error
	SetCompleted(ctx context.Context, season, owner, name string, role checklist.Role, completed bool) (*checklist.Entry, error)
	AddEntry(ctx context.Context, season, owner string, entry checklist.Entry) (bool, error)
	RemoveEntry(ctx context.Context, season, owner, name string, role checklist.Role) error
	TypeSettings(ctx context.Context, season string) ([]checklist.TypeSettings, error)
	SaveTypeSettings(ctx context.Context, ts checklist.TypeSettings) error
	Close(ctx context.Context) error
}

var openStore = func(ctx context.Context) (checklistStore, error) {
	c := getConfig()
	m, err := store.Open(ctx, c.MongoURI, c.Database, logger)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// withStore opens the store, runs fn, and closes the store. Connection
// failures are reported with a stable code before fn runs.
func withStore(ctx context.Context, fn func(checklistStore) error) error {
	s, err := openStore(ctx)
	if err != nil {
		return handleError(ErrDatabaseConnect, err, "Check mongo_uri in config.toml or MONGO_URI")
	}
	defer func() { _ = s.Close(context.Background()) }()
	return fn(s)
}

// storeErrorCode maps store sentinel errors to stable error codes.
func storeErrorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrChecklistNotFound
	case errors.Is(err, store.ErrEntryNotFound):
		return ErrEntryNotFound
	case errors.Is(err, store.ErrExists):
		return ErrChecklistExists
	default:
		return ErrDatabaseError
	}
}

func owner() string {
	if o := getConfig().Owner; o != "" {
		return o
	}
	return checklist.DefaultOwner
}

func changeLog() *audit.Log {
	return audit.New(getConfig().Paths.AuditLog)
}

// recordChange appends e to the change log. The store write already
// succeeded, so a failed append is logged and not returned.
func recordChange(e audit.Entry) {
	if e.Owner == "" {
		e.Owner = owner()
	}
	if err := changeLog().Record(e); err != nil {
		logger.Warn("failed to record change", zap.String("op", e.Operation), zap.Error(err))
	}
}
