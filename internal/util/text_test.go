package util

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain utf8",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "contains null byte",
			input: "hel\x00lo",
			want:  "hello",
		},
		{
			name:  "contains invalid utf8",
			input: string([]byte{'a', 0xff, 'b'}),
			want:  "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeText(tt.input)
			if got != tt.want {
				t.Fatalf("unexpected sanitized value: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Pulp Fiction", want: "pulp-fiction"},
		{in: "  Se7en ", want: "se7en"},
		{in: "Star Wars: A New Hope!", want: "star-wars-a-new-hope"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SlugName(tt.in); got != tt.want {
				t.Fatalf("SlugName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
