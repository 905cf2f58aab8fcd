package model

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_EncodeRoundTrip(t *testing.T) {
	values := []string{
		"Singapore",
		"Abu Dhabi",
		"United States",
		"São Paulo",
		"a&b=c",
		"50%+off",
		"question?hash#",
		"slash/and\\backslash",
		"  leading and trailing  ",
		"日本",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			p := Params{"country_name": String(v), "year": Int(2023)}

			decoded, err := url.ParseQuery(p.Encode())
			require.NoError(t, err)
			assert.Equal(t, v, decoded.Get("country_name"))
			assert.Equal(t, "2023", decoded.Get("year"))
		})
	}
}

func TestParams_NullIsOmitted(t *testing.T) {
	p := Params{
		"session_key":       Int(9158),
		"overtaking_driver": Null(),
		"driver_number":     Value{},
	}

	assert.Equal(t, "session_key=9158", p.Encode())
	assert.Equal(t, []string{"session_key"}, p.Keys())

	_, present := p.Values()["overtaking_driver"]
	assert.False(t, present)
}

func TestParams_EncodeIsDeterministic(t *testing.T) {
	p := Params{"z": Int(1), "a": String("x y"), "m": Bool(true), "f": Float(1.5)}
	want := "a=x+y&f=1.5&m=true&z=1"
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, p.Encode())
	}
	assert.Equal(t, "", Params(nil).Encode())
}

func TestParamsFromValues(t *testing.T) {
	p := ParamsFromValues(url.Values{
		"session_key":  {"latest"},
		"year":         {"2023", "2024"},
		"country_name": {"Abu Dhabi"},
		"empty":        {""},
	})

	assert.Equal(t, Latest, p["session_key"])
	assert.Equal(t, Int(2023), p["year"])
	assert.Equal(t, String("Abu Dhabi"), p["country_name"])
	assert.True(t, p["empty"].IsNull())
	assert.Equal(t, "country_name=Abu+Dhabi&session_key=latest&year=2023", p.Encode())
}

func TestKey(t *testing.T) {
	assert.Equal(t, Int(9158), Key("9158"))
	assert.Equal(t, String("latest"), Key("latest"))
	assert.Equal(t, String("12a"), Key("12a"))
	assert.True(t, Key("").IsNull())
}

func TestValue_String(t *testing.T) {
	testCases := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{String("latest"), "latest"},
		{Int(-3), "-3"},
		{Float(91.743), "91.743"},
		{Float(2), "2"},
		{Bool(true), "true"},
		{RawJSON([]byte(`[1,2]`)), "[1,2]"},
	}
	for _, tc := range testCases {
		t.Run(tc.v.Kind().String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.String())
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	f, ok := Int(3).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = String("3").AsInt()
	assert.False(t, ok)

	s, ok := String("VER").AsString()
	assert.True(t, ok)
	assert.Equal(t, "VER", s)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Nil(t, Null().Interface())
	assert.Equal(t, int64(7), Int(7).Interface())
	assert.True(t, Int(7).Equal(Int64(7)))
	assert.False(t, Int(7).Equal(Float(7)))
}

func TestValue_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		raw  string
		kind Kind
		text string
	}{
		{`null`, KindNull, ""},
		{`"VER"`, KindString, "VER"},
		{`1`, KindInt, "1"},
		{`9007199254740993`, KindInt, "9007199254740993"},
		{`1.25`, KindFloat, "1.25"},
		{`1e3`, KindFloat, "1000"},
		{`false`, KindBool, "false"},
		{`[1, 2]`, KindJSON, "[1, 2]"},
		{`{"a": 1}`, KindJSON, `{"a": 1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &v))
			assert.Equal(t, tc.kind, v.Kind())
			assert.Equal(t, tc.text, v.String())
		})
	}

	var v Value
	assert.Error(t, v.UnmarshalJSON([]byte(`{`)))
}

func TestResultSet_Cells(t *testing.T) {
	rs := NewResultSet()
	rs.Append([]string{"a"}, Record{"a": Int(1)})
	rs.Append([]string{"b", "a"}, Record{"a": Int(2), "b": String("x")})

	assert.Equal(t, []string{"a", "b"}, rs.Columns())
	assert.True(t, rs.HasColumn("b"))
	assert.False(t, rs.HasColumn("c"))
	assert.Equal(t, [][]Value{{Int(1), Null()}, {Int(2), String("x")}}, rs.Cells())
	assert.Equal(t, []Value{Null(), String("x")}, rs.Column("b"))
}

func TestResultSet_MarshalJSON(t *testing.T) {
	rs := NewResultSet()
	rs.Append([]string{"lap_number", "segments"}, Record{"lap_number": Int(1), "segments": RawJSON([]byte(`[2048,2049]`))})
	rs.Append([]string{"lap_number", "note"}, Record{"lap_number": Int(2), "note": Null()})

	b, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.Equal(t, `[{"lap_number":1,"segments":[2048,2049]},{"lap_number":2,"note":null}]`, string(b))

	empty, err := json.Marshal(NewResultSet())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(empty))
}

func TestFromRecords(t *testing.T) {
	rs := FromRecords([]Record{
		{"b": Int(1), "a": Int(2)},
		{"c": Bool(true)},
	})
	assert.Equal(t, []string{"a", "b", "c"}, rs.Columns())
	assert.Equal(t, 2, rs.Len())
}
