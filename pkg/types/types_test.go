package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTableName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "simple", input: "users", want: true},
		{name: "with digits and underscore", input: "audit_2024", want: true},
		{name: "underscore only", input: "_", want: true},
		{name: "empty", input: "", want: false},
		{name: "dash", input: "my-table", want: false},
		{name: "space", input: "my table", want: false},
		{name: "dot", input: "a.b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTableName(tt.input))
		})
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "simple", input: "john", want: true},
		{name: "punctuation ok", input: "user:1/profile", want: true},
		{name: "empty", input: "", want: false},
		{name: "space", input: "a b", want: false},
		{name: "tab", input: "a\tb", want: false},
		{name: "newline", input: "a\nb", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidKey(tt.input))
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}
