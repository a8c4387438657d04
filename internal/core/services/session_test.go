package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/adapters/driven/storage/memory"
	"github.com/aluminium-labs/akl/internal/core/domain"
)

func TestSession_ClosePersistsMutations(t *testing.T) {
	store := memory.NewLibraryStore()

	session, err := Begin(store, "/archive")
	require.NoError(t, err)

	session.Lib.Records = append(session.Lib.Records, domain.Record{Checksum: "abc"})
	require.NoError(t, session.Close())

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "abc", records[0].Checksum)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	store := memory.NewLibraryStore()

	session, err := Begin(store, "/archive")
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	require.NoError(t, session.Close())

	assert.Equal(t, 1, store.Saves)
}

func TestSession_MutationsAfterCloseAreNotPersisted(t *testing.T) {
	store := memory.NewLibraryStore()

	session, err := Begin(store, "/archive")
	require.NoError(t, err)
	require.NoError(t, session.Close())

	session.Lib.Records = append(session.Lib.Records, domain.Record{Checksum: "late"})
	require.NoError(t, session.Close())

	assert.Empty(t, store.Records())
}
