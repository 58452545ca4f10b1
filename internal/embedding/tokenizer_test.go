package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on whitespace",
			text: "CREATE TABLE Users",
			want: []string{"create", "table", "users"},
		},
		{
			name: "splits off punctuation",
			text: "foo(bar)",
			want: []string{"foo", "(", "bar", ")"},
		},
		{
			name: "create table statement",
			text: "create table users (id int primary key, name varchar(50))",
			want: []string{
				"create", "table", "users", "(", "id", "int", "primary",
				"key", ",", "name", "varchar", "(", "50", ")", ")",
			},
		},
		{
			name: "semicolons and commas stand alone",
			text: "a,b;c",
			want: []string{"a", ",", "b", ";", "c"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	text := "create table orders (id bigint primary key);"
	assert.Equal(t, Tokenize(text), Tokenize(text))
}

func TestStripStopWords(t *testing.T) {
	tokens := []string{"the", "users", "of", "orders", "on", "null"}
	got := StripStopWords(tokens)

	// SQL keywords like "on" and "null" survive; English stop words do not.
	assert.Equal(t, []string{"users", "orders", "on", "null"}, got)
}
