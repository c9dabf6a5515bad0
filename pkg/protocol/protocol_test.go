package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharknado-db/sharknado/pkg/document"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Command
		wantErr error
	}{
		{
			name: "login",
			line: "LOGIN admin admin123",
			want: Command{Verb: VerbLogin, User: "admin", Pass: "admin123"},
		},
		{
			name: "login lowercase verb",
			line: "login admin admin123",
			want: Command{Verb: VerbLogin, User: "admin", Pass: "admin123"},
		},
		{
			name: "login with CR",
			line: "LOGIN admin admin123\r",
			want: Command{Verb: VerbLogin, User: "admin", Pass: "admin123"},
		},
		{
			name:    "login missing pass",
			line:    "LOGIN admin",
			wantErr: ErrBadArguments,
		},
		{
			name: "logout",
			line: "LOGOUT",
			want: Command{Verb: VerbLogout},
		},
		{
			name:    "logout with argument",
			line:    "LOGOUT now",
			wantErr: ErrBadArguments,
		},
		{
			name: "get",
			line: "GET users john",
			want: Command{Verb: VerbGet, Table: "users", Key: "john"},
		},
		{
			name:    "get missing key",
			line:    "GET users",
			wantErr: ErrBadArguments,
		},
		{
			name: "delete",
			line: "delete users john",
			want: Command{Verb: VerbDelete, Table: "users", Key: "john"},
		},
		{
			name: "query with conditions",
			line: `QUERY users age >= 18 name contains "John"`,
			want: Command{Verb: VerbQuery, Table: "users", Query: `age >= 18 name contains "John"`},
		},
		{
			name: "query bare table",
			line: "QUERY users",
			want: Command{Verb: VerbQuery, Table: "users", Query: ""},
		},
		{
			name:    "query without table",
			line:    "QUERY",
			wantErr: ErrBadArguments,
		},
		{
			name:    "unknown verb",
			line:    "FROBNICATE users john",
			wantErr: ErrUnknownCommand,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: ErrBadArguments,
		},
		{
			name:    "set without payload",
			line:    "SET users john",
			wantErr: ErrBadArguments,
		},
		{
			name:    "set with bad json",
			line:    "SET users john {broken",
			wantErr: ErrBadJSON,
		},
		{
			name:    "update with bad json",
			line:    `UPDATE users john "unterminated`,
			wantErr: ErrBadJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePayload(t *testing.T) {
	cmd, err := Parse(`SET users john {"name": "John", "age": 30}`)
	require.NoError(t, err)
	assert.Equal(t, VerbSet, cmd.Verb)
	assert.Equal(t, "users", cmd.Table)
	assert.Equal(t, "john", cmd.Key)

	want, err := document.Decode(`{"name":"John","age":30}`)
	require.NoError(t, err)
	assert.True(t, document.Equal(want, cmd.Doc))

	// The payload is the raw remainder of the line; extra internal
	// whitespace is the JSON parser's problem, not the tokenizer's
	cmd, err = Parse("UPDATE  users   john   [1, 2, 3]")
	require.NoError(t, err)
	assert.Equal(t, "users", cmd.Table)
	assert.Equal(t, "john", cmd.Key)
}

func TestResponseFraming(t *testing.T) {
	assert.Equal(t, "OK: Logged in as admin\n", OK("Logged in as admin"))
	assert.Equal(t, "RESULT: {\"a\":1}\n", Result(`{"a":1}`))
	assert.Equal(t, "ERROR: Authentication required\n", Error("Authentication required"))
}
