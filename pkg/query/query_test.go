package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharknado-db/sharknado/pkg/document"
)

func mustDoc(t *testing.T, s string) any {
	t.Helper()
	v, err := document.Decode(s)
	require.NoError(t, err)
	return v
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "empty query", input: "", want: 0},
		{name: "single condition", input: `age > 29`, want: 1},
		{name: "two conditions", input: `age >= 18 name contains "John"`, want: 2},
		{name: "dangling token", input: `age >`, wantErr: true},
		{name: "four tokens", input: `age > 29 extra`, wantErr: true},
		{name: "unknown operator", input: `age ~ 29`, wantErr: true},
		{name: "operator in path position ok", input: `= = =`, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, conds, tt.want)
		})
	}
}

func TestParseLiterals(t *testing.T) {
	conds, err := Parse(`a = "quoted" b = 30 c = 29.5 d = true e = null f = bare g = "30`)
	require.NoError(t, err)

	assert.Equal(t, "quoted", conds[0].Literal)
	assert.True(t, document.Equal(mustDoc(t, "30"), conds[1].Literal))
	assert.True(t, document.Equal(mustDoc(t, "29.5"), conds[2].Literal))
	assert.Equal(t, true, conds[3].Literal)
	assert.Nil(t, conds[4].Literal)
	assert.Equal(t, "bare", conds[5].Literal)
	// Unterminated quote falls back to the raw token
	assert.Equal(t, `"30`, conds[6].Literal)
}

func TestMatches(t *testing.T) {
	doc := mustDoc(t, `{
		"age": 30,
		"name": "Johnny",
		"tags": ["rust", "db"],
		"specs": {"battery": "30 hours"},
		"active": true
	}`)

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty conjunction is true", query: ``, want: true},
		{name: "equal number", query: `age = 30`, want: true},
		{name: "equal number float form", query: `age = 30.0`, want: true},
		{name: "not equal", query: `age != 31`, want: true},
		{name: "not equal false", query: `age != 30`, want: false},
		{name: "greater with float literal", query: `age > 29.5`, want: true},
		{name: "less with float literal", query: `age < 30.5`, want: true},
		{name: "greater or equal boundary", query: `age >= 30`, want: true},
		{name: "less or equal fails", query: `age <= 29`, want: false},
		{name: "missing path equal is false", query: `ghost = 1`, want: false},
		{name: "missing path not-equal is true", query: `ghost != 1`, want: true},
		{name: "missing path ordered is false", query: `ghost > 1`, want: false},
		{name: "type mismatch ordered is false not error", query: `name > 10`, want: false},
		{name: "contains substring", query: `name contains "John"`, want: true},
		{name: "contains substring miss", query: `name contains "Jane"`, want: false},
		{name: "contains array member", query: `tags contains "rust"`, want: true},
		{name: "contains no partial array match", query: `tags contains "ru"`, want: false},
		{name: "contains on number is false", query: `age contains "3"`, want: false},
		{name: "dotted path contains", query: `specs.battery contains "30"`, want: true},
		{name: "bool equality", query: `active = true`, want: true},
		{name: "conjunction all hold", query: `age >= 18 name contains "John"`, want: true},
		{name: "conjunction one fails", query: `age >= 18 name contains "Jane"`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, err := Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Matches(doc, conds))
		})
	}
}
