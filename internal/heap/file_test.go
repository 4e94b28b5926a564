package heap

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novatuple/internal/record"
	"github.com/tuannm99/novatuple/internal/storage"
)

// Simple schema: (id INT64, name TEXT(24), active BOOL)
func usersSchema() *record.Schema {
	return record.MustSchema(
		[]record.Type{record.Int64Type, record.MustTextType(24), record.BoolType},
		[]string{"id", "name", "active"},
	)
}

func newUser(t *testing.T, s *record.Schema, id int64, name string, active bool) *record.Record {
	t.Helper()
	r := record.New(s)
	require.NoError(t, r.SetField(0, record.Int64(id)))
	require.NoError(t, r.SetField(1, record.Text(name)))
	require.NoError(t, r.SetField(2, record.Bool(active)))
	return r
}

// newTestFile opens a heap file in a temp dir with small pages so tests
// span several pages.
func newTestFile(t *testing.T, base string) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), base+".tbl")
	f, err := Open(base, path, usersSchema(), 256)
	require.NoError(t, err)
	return f, path
}

func TestFile_InsertAndScan_Persisted(t *testing.T) {
	f, path := newTestFile(t, "users")

	const numRows = 30
	expected := make(map[int64]string)
	for i := 1; i <= numRows; i++ {
		r := newUser(t, f.Schema, int64(i), fmt.Sprintf("user-%d", i), i%2 == 0)
		tid, err := f.Insert(r)
		require.NoError(t, err)

		loc, ok := r.Location()
		require.True(t, ok)
		require.Equal(t, tid, loc)
		expected[int64(i)] = r.String()
	}
	require.Greater(t, f.Pager.PageCount(), uint32(1))
	require.NoError(t, f.Close())

	// reopen
	f2, err := Open("users", path, usersSchema(), 256)
	require.NoError(t, err)
	defer f2.Close()

	got := make(map[int64]string)
	err = f2.Scan(func(r *record.Record) error {
		_, ok := r.Location()
		require.True(t, ok)

		fld, err := r.GetField(0)
		if err != nil {
			return err
		}
		id, _ := fld.Int64()
		got[id] = r.String()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, expected, got)
}

func TestFile_GetUpdateDelete(t *testing.T) {
	f, _ := newTestFile(t, "users_crud")
	defer f.Close()

	var tid3 record.TID
	for i := 1; i <= 5; i++ {
		tid, err := f.Insert(newUser(t, f.Schema, int64(i), fmt.Sprintf("user-%d", i), true))
		require.NoError(t, err)
		if i == 3 {
			tid3 = tid
		}
	}

	r, err := f.Get(tid3)
	require.NoError(t, err)
	require.Equal(t, "3\tuser-3\ttrue", r.String())

	require.NoError(t, f.Update(tid3, newUser(t, f.Schema, 3, "renamed", false)))
	r, err = f.Get(tid3)
	require.NoError(t, err)
	require.Equal(t, "3\trenamed\tfalse", r.String())

	require.NoError(t, f.Delete(tid3))
	_, err = f.Get(tid3)
	require.ErrorIs(t, err, storage.ErrBadSlot)
	require.ErrorIs(t, f.Delete(tid3), storage.ErrBadSlot)

	n := 0
	require.NoError(t, f.Scan(func(*record.Record) error { n++; return nil }))
	require.Equal(t, 4, n)

	// the freed slot is taken by the next insert on that page
	tid, err := f.Insert(newUser(t, f.Schema, 6, "user-6", true))
	require.NoError(t, err)
	require.Equal(t, tid3, tid)
}

func TestFile_InsertErrors(t *testing.T) {
	f, _ := newTestFile(t, "users_err")
	defer f.Close()

	other := record.MustSchema([]record.Type{record.Int64Type}, []string{"id"})
	r := record.New(other)
	require.NoError(t, r.SetField(0, record.Int64(1)))
	_, err := f.Insert(r)
	require.ErrorIs(t, err, storage.ErrSchemaMismatch)

	incomplete := record.New(f.Schema)
	_, err = f.Insert(incomplete)
	require.ErrorIs(t, err, record.ErrIncompleteRecord)

	_, err = f.Get(record.TID{PageID: 9})
	require.ErrorIs(t, err, storage.ErrInvalidPageID)
}

func TestFile_ScanStopsOnError(t *testing.T) {
	f, _ := newTestFile(t, "users_stop")
	defer f.Close()

	for i := 1; i <= 3; i++ {
		_, err := f.Insert(newUser(t, f.Schema, int64(i), "u", true))
		require.NoError(t, err)
	}

	stop := errors.New("stop")
	seen := 0
	err := f.Scan(func(*record.Record) error {
		seen++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, seen)
}

func TestOpen_RecordTooLarge(t *testing.T) {
	wide := record.MustSchema([]record.Type{record.MustTextType(300)}, nil)
	_, err := Open("wide", filepath.Join(t.TempDir(), "wide.tbl"), wide, 256)
	require.ErrorIs(t, err, storage.ErrRecordTooLarge)
}

func TestFile_ReadPage(t *testing.T) {
	f, _ := newTestFile(t, "users_page")
	defer f.Close()

	_, err := f.Insert(newUser(t, f.Schema, 1, "a", true))
	require.NoError(t, err)

	p, err := f.ReadPage(0)
	require.NoError(t, err)
	require.Equal(t, 7, p.NumSlots())
	require.Equal(t, 6, p.FreeSlots())
}

func TestFile_Insert_WriteFailureLeavesLocation(t *testing.T) {
	t.Run("never placed", func(t *testing.T) {
		f, _ := newTestFile(t, "users_closed")
		require.NoError(t, f.Pager.Close())

		r := newUser(t, f.Schema, 1, "a", true)
		_, err := f.Insert(r)
		require.ErrorIs(t, err, storage.ErrPagerClosed)

		_, placed := r.Location()
		require.False(t, placed)
	})

	t.Run("previously placed", func(t *testing.T) {
		f, _ := newTestFile(t, "users_closed_prev")
		require.NoError(t, f.Pager.Close())

		r := newUser(t, f.Schema, 1, "a", true)
		old := record.TID{PageID: 4, Slot: 2}
		r.SetLocation(old)

		_, err := f.Insert(r)
		require.ErrorIs(t, err, storage.ErrPagerClosed)

		loc, placed := r.Location()
		require.True(t, placed)
		require.Equal(t, old, loc)
	})
}
