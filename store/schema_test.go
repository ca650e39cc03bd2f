package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", "users"},
		{"Guild_Settings", "guild_settings"},
		{"users; DROP TABLE x", "usersdroptablex"},
		{"react-roles", "reactroles"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), tt.in)
	}
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "''", QuoteLiteral(""))
	assert.Equal(t, "'[]'", QuoteLiteral("[]"))
	assert.Equal(t, "'it''s'", QuoteLiteral("it's"))
}

func TestNewSchema_PanicsOnUnknownKey(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema("t", []string{"missing"}, Int("id"))
	})
	assert.Panics(t, func() {
		NewSchema("t", nil, Int("id"))
	})
}

func TestSchema_CheckPanicsOnWrongWidth(t *testing.T) {
	s := NewSchema("t", []string{"id"}, Int("id"), Text("name"))
	assert.NotPanics(t, func() { s.Check(Record{int64(1), "a"}) })
	assert.Panics(t, func() { s.Check(Record{int64(1)}) })
}

func TestRecord_AccessorsPanicOnWrongType(t *testing.T) {
	r := Record{int64(1), "a", true, 1.5}
	assert.Equal(t, int64(1), r.Int(0))
	assert.Equal(t, "a", r.String(1))
	assert.True(t, r.Bool(2))
	assert.Equal(t, 1.5, r.Float(3))

	assert.Panics(t, func() { r.Int(1) })
	assert.Panics(t, func() { r.String(0) })
}

func TestLists(t *testing.T) {
	assert.Equal(t, "[]", EncodeList[int64](nil))
	assert.Equal(t, "[]", EncodeList([]string{}))
	assert.Equal(t, `[1,2]`, EncodeList([]int64{1, 2}))

	assert.Equal(t, []int64{}, DecodeList[int64]("[]"))
	assert.Equal(t, []string{"a\"b"}, DecodeList[string](EncodeList([]string{"a\"b"})))
	assert.Panics(t, func() { DecodeList[int64]("not json") })
}

func TestMaps(t *testing.T) {
	assert.Equal(t, "{}", EncodeMap[int64](nil))
	assert.Equal(t, map[string]int64{"gamble": 5}, DecodeMap[int64](EncodeMap(map[string]int64{"gamble": 5})))
	assert.Equal(t, map[string]int64{}, DecodeMap[int64]("{}"))
}

func TestOptionalID(t *testing.T) {
	assert.Equal(t, int64(0), OptionalID(nil))
	assert.Nil(t, DecodeOptionalID(0))

	id := int64(42)
	assert.Equal(t, int64(42), OptionalID(&id))
	assert.Equal(t, &id, DecodeOptionalID(42))
}
