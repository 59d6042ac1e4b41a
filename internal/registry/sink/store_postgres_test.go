package sink

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namereg/internal/registry/models"
	id "namereg/pkg/domain"
)

func TestPostgresEventStoreAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	identity := id.AccountID(uuid.New())
	event := models.Event{
		Type:     models.EventNameClaimed,
		Identity: identity,
		DomainID: 7,
		Name:     "alice.tld",
		At:       time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registry_events")).
		WithArgs(sqlmock.AnyArg(), "name_claimed", identity.String(), int32(7), sqlmock.AnyArg(), event.At).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPostgresEventStore(db)
	require.NoError(t, store.Append(context.Background(), event))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEventStoreRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	event := models.Event{
		Type:     models.EventOwnerChanged,
		Identity: id.AccountID(uuid.New()),
		DomainID: 3,
		At:       time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM registry_events")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	store := NewPostgresEventStore(db)
	events, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventOwnerChanged, events[0].Type)
	assert.EqualValues(t, 3, events[0].DomainID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEventStoreMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS registry_events")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPostgresEventStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
