package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hypermart/core/types"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "users.txt"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := tempStore(t)
	accounts := []types.Account{
		{
			ID:             42,
			FullName:       "John Ronald Reuel Tolkien",
			Balance:        820.75,
			LegacyDiscount: 0.05,
			Tier:           types.TierRegular,
			Purchases: []types.Purchase{
				{Company: "Samsung", Title: "Washing Machine", PricePaid: 500},
				{Company: "Nikon", Title: "DSLR Camera", PricePaid: 680},
			},
		},
		{
			ID:       7,
			FullName: "Jane Doe",
			Balance:  0.1 + 0.2, // deliberately awkward float
			Tier:     types.TierRegular,
		},
	}

	require.NoError(t, store.SaveAll(accounts))
	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	byID := map[int64]types.Account{}
	for _, acct := range loaded {
		byID[acct.ID] = acct
	}
	tolkien := byID[42]
	require.Equal(t, "John Ronald Reuel Tolkien", tolkien.FullName)
	require.Equal(t, 820.75, tolkien.Balance)
	require.Equal(t, 0.05, tolkien.LegacyDiscount)
	// History must come back complete and in original order.
	require.Equal(t, accounts[0].Purchases, tolkien.Purchases)

	jane := byID[7]
	require.Equal(t, 0.1+0.2, jane.Balance, "float round trip must be bit-exact")
	require.Empty(t, jane.Purchases)
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	store := tempStore(t)
	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Empty(t, loaded)

	// The empty file must exist afterwards.
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	require.Zero(t, info.Size())
}

func TestFileStoreSaveReplacesPriorSnapshot(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.SaveAll([]types.Account{{ID: 1, FullName: "A", Balance: 10}}))
	require.NoError(t, store.SaveAll([]types.Account{{ID: 2, FullName: "B", Balance: 20}}))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, int64(2), loaded[0].ID)

	// The atomic write must not leave a scratch file behind.
	_, err = os.Stat(store.Path() + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsEmbeddedNewlines(t *testing.T) {
	store := tempStore(t)
	err := store.SaveAll([]types.Account{{ID: 1, FullName: "bad\nname", Balance: 1}})
	require.Error(t, err)

	// A failed save must not clobber or create the store file.
	_, statErr := os.Stat(store.Path())
	require.True(t, os.IsNotExist(statErr))
}

func TestFileStoreCorruptRecords(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"garbage id", "not-a-number\nJohn Doe\n100\n0\n0\n"},
		{"zero id", "0\nJohn Doe\n100\n0\n0\n"},
		{"negative id", "-3\nJohn Doe\n100\n0\n0\n"},
		{"empty name", "1\n\n100\n0\n0\n"},
		{"garbage balance", "1\nJohn Doe\nlots\n0\n0\n"},
		{"negative balance", "1\nJohn Doe\n-5\n0\n0\n"},
		{"garbage count", "1\nJohn Doe\n100\n0\nmany\n"},
		{"negative count", "1\nJohn Doe\n100\n0\n-1\n"},
		{"truncated header", "1\nJohn Doe\n100\n"},
		{"truncated purchase", "1\nJohn Doe\n100\n0\n2\nSamsung\nWashing Machine\n500\nNikon\n"},
		{"garbage price paid", "1\nJohn Doe\n100\n0\n1\nSamsung\nWashing Machine\ncheap\n"},
		{"duplicate id", "1\nJohn Doe\n100\n0\n0\n1\nJane Doe\n50\n0\n0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			loaded, err := NewFileStore(path).LoadAll()
			require.ErrorIs(t, err, ErrCorruptStore)
			require.Nil(t, loaded, "a corrupt store must yield no accounts at all")
		})
	}
}

func TestFileStoreReadsHandWrittenFormat(t *testing.T) {
	// The format is line-for-line the historical users.txt layout.
	content := "123\nJohn Doe\n820\n0\n2\nSamsung\nWashing Machine\n500\nNikon\nDSLR Camera\n680\n"
	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := NewFileStore(path).LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	acct := loaded[0]
	require.Equal(t, int64(123), acct.ID)
	require.Equal(t, "John Doe", acct.FullName)
	require.Equal(t, float64(820), acct.Balance)
	require.Equal(t, types.TierRegular, acct.Tier)
	require.Equal(t, []types.Purchase{
		{Company: "Samsung", Title: "Washing Machine", PricePaid: 500},
		{Company: "Nikon", Title: "DSLR Camera", PricePaid: 680},
	}, acct.Purchases)
}

func TestMemStoreRoundTripIsIsolated(t *testing.T) {
	store := NewMemStore()
	acct := types.Account{ID: 1, FullName: "A", Balance: 100,
		Purchases: []types.Purchase{{Company: "C", Title: "T", PricePaid: 9}}}
	require.NoError(t, store.SaveAll([]types.Account{acct}))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	// Mutating what we got back must not affect the stored snapshot.
	loaded[0].Purchases[0].PricePaid = 1
	again, err := store.LoadAll()
	require.NoError(t, err)
	require.Equal(t, 9.0, again[0].Purchases[0].PricePaid)
}
