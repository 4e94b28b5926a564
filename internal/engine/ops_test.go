package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novatuple/internal/record"
)

func userRecord(t *testing.T, s *record.Schema, id int32, name string, age int64) *record.Record {
	t.Helper()
	r := record.New(s)
	require.NoError(t, r.SetField(0, record.Int32(id)))
	require.NoError(t, r.SetField(1, record.Text(name)))
	require.NoError(t, r.SetField(2, record.Int64(age)))
	return r
}

func usersSchema() *record.Schema {
	return record.MustSchema(
		[]record.Type{record.Int32Type, record.MustTextType(16), record.Int64Type},
		[]string{"id", "name", "age"},
	)
}

func TestProject(t *testing.T) {
	s := usersSchema()
	out, idx, err := ProjectSchema(s, []string{"age", "id"})
	require.NoError(t, err)
	require.Equal(t, []int{2, 0}, idx)
	require.Equal(t, "INT64(age), INT32(id)", out.String())

	r := userRecord(t, s, 1, "alice", 30)
	r.SetLocation(record.TID{PageID: 2, Slot: 5})
	require.NoError(t, Project(r, out, idx))

	require.Same(t, out, r.Schema())
	require.Equal(t, "30\t1", r.String())
	loc, ok := r.Location()
	require.True(t, ok)
	require.Equal(t, record.TID{PageID: 2, Slot: 5}, loc)

	_, _, err = ProjectSchema(s, []string{"missing"})
	require.ErrorIs(t, err, record.ErrNameNotFound)

	_, _, err = ProjectSchema(s, nil)
	require.ErrorIs(t, err, record.ErrInvalidSchema)

	require.ErrorIs(t, Project(r, out, []int{0}), record.ErrInvalidSchema)
}

func TestConcat(t *testing.T) {
	ls := usersSchema()
	rs := record.MustSchema([]record.Type{record.Int32Type, record.BoolType}, []string{"user_id", "paid"})
	merged := record.Merge(ls, rs)

	l := userRecord(t, ls, 1, "alice", 30)
	r := record.New(rs)
	require.NoError(t, r.SetField(0, record.Int32(1)))
	require.NoError(t, r.SetField(1, record.Bool(true)))

	out, err := Concat(l, r, merged)
	require.NoError(t, err)
	require.Equal(t, "1\talice\t30\t1\ttrue", out.String())

	_, err = Concat(l, r, ls)
	require.ErrorIs(t, err, record.ErrInvalidSchema)
}

func TestNestedLoopJoin(t *testing.T) {
	db := NewDatabase(t.TempDir(), 512, nil)
	defer db.Close()

	us := usersSchema()
	users, err := db.CreateTable("users", us)
	require.NoError(t, err)

	ords := record.MustSchema([]record.Type{record.Int32Type, record.Int64Type}, []string{"user_id", "amount"})
	orders, err := db.CreateTable("orders", ords)
	require.NoError(t, err)

	for i, name := range []string{"alice", "bob", "carol"} {
		_, err := users.Insert(userRecord(t, us, int32(i+1), name, int64(20+i)))
		require.NoError(t, err)
	}
	for _, o := range [][2]int{{1, 10}, {3, 30}, {1, 11}, {9, 99}} {
		r := record.New(ords)
		require.NoError(t, r.SetField(0, record.Int32(int32(o[0]))))
		require.NoError(t, r.SetField(1, record.Int64(int64(o[1]))))
		_, err := orders.Insert(r)
		require.NoError(t, err)
	}

	var rows []string
	var schema *record.Schema
	err = NestedLoopJoin(users, orders, EqualOn(0, 0), func(r *record.Record) error {
		if schema == nil {
			schema = r.Schema()
		}
		require.Same(t, schema, r.Schema())
		rows = append(rows, r.String())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"1\talice\t20\t1\t10",
		"1\talice\t20\t1\t11",
		"3\tcarol\t22\t3\t30",
	}, rows)
	require.True(t, schema.Equal(record.Merge(us, ords)))
}
