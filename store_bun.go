package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var _ SessionStore = (*BunStore)(nil)

type sessionRecord struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`

	Profile   string    `bun:"profile,pk"`
	Token     string    `bun:"token,notnull"`
	UserJSON  []byte    `bun:"user_json,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// BunStore persists sessions in SQLite via bun, keyed by profile name. Unlike
// FileStore it can hold one session per named profile in a single database.
type BunStore struct {
	db      *bun.DB
	profile string
	logger  Logger
}

// NewBunStore opens (or creates) the SQLite database at dsn and ensures the
// sessions table exists. Use ":memory:" for throwaway databases in tests.
func NewBunStore(dsn, profile string) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to open session database")
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	s := &BunStore{
		db:      db,
		profile: profile,
		logger:  defLogger{},
	}

	if _, err := db.NewCreateTable().
		Model((*sessionRecord)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create sessions table")
	}

	return s, nil
}

// WithLogger overrides the logger used for degraded-load reporting.
func (s *BunStore) WithLogger(logger Logger) *BunStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Close releases the underlying database handle.
func (s *BunStore) Close() error {
	return s.db.Close()
}

func (s *BunStore) Save(session Session) error {
	if session.IsZero() {
		return ErrNotAuthenticated
	}

	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return err
	}

	record := &sessionRecord{
		Profile:   s.profile,
		Token:     session.Token,
		UserJSON:  userJSON,
		UpdatedAt: time.Now(),
	}

	_, err = s.db.NewInsert().
		Model(record).
		On("CONFLICT (profile) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("user_json = EXCLUDED.user_json").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())

	return err
}

func (s *BunStore) Load() (Session, bool) {
	record := new(sessionRecord)

	err := s.db.NewSelect().
		Model(record).
		Where("profile = ?", s.profile).
		Scan(context.Background())
	if err != nil {
		return Session{}, false
	}

	user := new(User)
	if err := json.Unmarshal(record.UserJSON, user); err != nil || record.Token == "" {
		s.logger.Warn("discarding corrupt session row for profile %s", s.profile)
		_ = s.Clear()
		return Session{}, false
	}

	return Session{Token: record.Token, User: user}, true
}

func (s *BunStore) Clear() error {
	_, err := s.db.NewDelete().
		Model((*sessionRecord)(nil)).
		Where("profile = ?", s.profile).
		Exec(context.Background())
	return err
}
