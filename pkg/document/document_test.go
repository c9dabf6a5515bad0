package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode(s)
	require.NoError(t, err)
	return v
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "object", input: `{"name":"John","age":30}`},
		{name: "array", input: `[1,2,3]`},
		{name: "string", input: `"hello"`},
		{name: "number", input: `42`},
		{name: "null", input: `null`},
		{name: "nested", input: `{"specs":{"battery":"30 hours"}}`},
		{name: "empty", input: ``, wantErr: true},
		{name: "truncated object", input: `{"a":`, wantErr: true},
		{name: "trailing garbage", input: `{"a":1} {"b":2}`, wantErr: true},
		{name: "bare word", input: `hello`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeRoundTripKeepsIntegers(t *testing.T) {
	v := mustDecode(t, `{"age":30,"score":1.5}`)
	out, err := Encode(v)
	require.NoError(t, err)
	assert.Contains(t, out, `"age":30`)
	assert.Contains(t, out, `"score":1.5`)
}

func TestResolve(t *testing.T) {
	doc := mustDecode(t, `{
		"name": "John",
		"specs": {"battery": "30 hours", "ports": [1, 2, 3]},
		"tags": ["rust", "db"],
		"matrix": [[1], [2, 3]]
	}`)

	tests := []struct {
		name  string
		path  string
		want  any
		found bool
	}{
		{name: "top-level field", path: "name", want: "John", found: true},
		{name: "nested field", path: "specs.battery", want: "30 hours", found: true},
		{name: "array index", path: "tags.0", want: "rust", found: true},
		{name: "array index nested", path: "matrix.1.1", want: mustDecode(t, "3"), found: true},
		{name: "missing field", path: "ghost", found: false},
		{name: "missing nested field", path: "specs.weight", found: false},
		{name: "index out of range", path: "tags.2", found: false},
		{name: "negative index", path: "tags.-1", found: false},
		{name: "field segment on array", path: "tags.first", found: false},
		{name: "segment past primitive", path: "name.length", found: false},
		{name: "empty segment", path: "specs.", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Resolve(doc, tt.path)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.True(t, Equal(tt.want, got), "resolved %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "equal strings", a: `"x"`, b: `"x"`, want: true},
		{name: "different strings", a: `"x"`, b: `"y"`, want: false},
		{name: "integer and float promote", a: `30`, b: `30.0`, want: true},
		{name: "different numbers", a: `30`, b: `31`, want: false},
		{name: "number vs string", a: `30`, b: `"30"`, want: false},
		{name: "bools", a: `true`, b: `true`, want: true},
		{name: "nulls", a: `null`, b: `null`, want: true},
		{name: "null vs false", a: `null`, b: `false`, want: false},
		{name: "equal arrays", a: `[1,"a"]`, b: `[1,"a"]`, want: true},
		{name: "array order matters", a: `[1,2]`, b: `[2,1]`, want: false},
		{name: "array length differs", a: `[1]`, b: `[1,1]`, want: false},
		{name: "equal objects", a: `{"a":1,"b":[true]}`, b: `{"b":[true],"a":1}`, want: true},
		{name: "object extra key", a: `{"a":1}`, b: `{"a":1,"b":2}`, want: false},
		{name: "nested mismatch", a: `{"a":{"b":1}}`, b: `{"a":{"b":2}}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Equal(mustDecode(t, tt.a), mustDecode(t, tt.b))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
		ok   bool
	}{
		{name: "int less than float", a: `30`, b: `30.5`, want: -1, ok: true},
		{name: "float greater than int", a: `30.5`, b: `30`, want: 1, ok: true},
		{name: "numeric equal across types", a: `30`, b: `30.0`, want: 0, ok: true},
		{name: "strings byte order", a: `"abc"`, b: `"abd"`, want: -1, ok: true},
		{name: "string equal", a: `"x"`, b: `"x"`, want: 0, ok: true},
		{name: "number vs string undefined", a: `30`, b: `"30"`, ok: false},
		{name: "string vs number undefined", a: `"name"`, b: `10`, ok: false},
		{name: "bool undefined", a: `true`, b: `false`, ok: false},
		{name: "array undefined", a: `[1]`, b: `[1]`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(mustDecode(t, tt.a), mustDecode(t, tt.b))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
