package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novatuple/internal/catalog"
	"github.com/tuannm99/novatuple/internal/record"
	"github.com/tuannm99/novatuple/internal/storage"
)

func TestDatabase_CreateOpenReopen(t *testing.T) {
	dir := t.TempDir()
	s := record.MustSchema([]record.Type{record.Int32Type, record.MustTextType(16)}, []string{"id", "name"})

	db := NewDatabase(dir, 512, nil)
	tbl, err := db.CreateTable("users", s)
	require.NoError(t, err)

	again, err := db.OpenTable("users")
	require.NoError(t, err)
	require.Same(t, tbl, again)

	r := record.New(s)
	require.NoError(t, r.SetField(0, record.Int32(7)))
	require.NoError(t, r.SetField(1, record.Text("alice")))
	tid, err := tbl.Insert(r)
	require.NoError(t, err)

	_, err = db.CreateTable("users", s)
	require.ErrorIs(t, err, catalog.ErrTableExists)
	_, err = db.OpenTable("orders")
	require.ErrorIs(t, err, catalog.ErrTableNotFound)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
	_, err = db.OpenTable("users")
	require.ErrorIs(t, err, ErrDatabaseClosed)

	// same catalog, fresh handle
	db2 := NewDatabase(dir, 512, db.Catalog)
	defer db2.Close()
	tbl2, err := db2.OpenTable("users")
	require.NoError(t, err)

	got, err := tbl2.Get(tid)
	require.NoError(t, err)
	require.Equal(t, "7\talice", got.String())
}

func TestDatabase_CreateTable_RecordTooLarge(t *testing.T) {
	db := NewDatabase(t.TempDir(), 64, nil)
	defer db.Close()

	wide := record.MustSchema([]record.Type{record.MustTextType(500)}, []string{"body"})
	_, err := db.CreateTable("t", wide)
	require.ErrorIs(t, err, storage.ErrRecordTooLarge)
	require.Empty(t, db.Catalog.Names())

	// the name stays usable
	narrow := record.MustSchema([]record.Type{record.Int32Type}, []string{"id"})
	_, err = db.CreateTable("t", narrow)
	require.NoError(t, err)
	require.Equal(t, []string{"t"}, db.Catalog.Names())
}

func TestDatabase_CreateTable_OpenFailsRollsBack(t *testing.T) {
	dir := t.TempDir()
	// a directory where the heap file should go makes the open fail
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tables", "t.tbl"), 0o755))

	db := NewDatabase(dir, 512, nil)
	defer db.Close()

	s := record.MustSchema([]record.Type{record.Int32Type}, []string{"id"})
	_, err := db.CreateTable("t", s)
	require.Error(t, err)
	require.Empty(t, db.Catalog.Names())

	_, err = db.Catalog.Table("t")
	require.ErrorIs(t, err, catalog.ErrTableNotFound)
}

func TestDatabase_CreateTable_InvalidName(t *testing.T) {
	root := t.TempDir()
	db := NewDatabase(filepath.Join(root, "data"), 512, nil)
	defer db.Close()

	s := record.MustSchema([]record.Type{record.Int32Type}, []string{"id"})
	_, err := db.CreateTable("../../escaped", s)
	require.ErrorIs(t, err, catalog.ErrInvalidTableName)

	_, err = os.Stat(filepath.Join(root, "escaped.tbl"))
	require.True(t, os.IsNotExist(err))
	require.Empty(t, db.Catalog.Names())
}
