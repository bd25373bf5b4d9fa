package router_test

import (
	"reflect"
	"testing"

	"github.com/gowabot/gowabot/internal/router"
)

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "plain command", text: "!ping", want: true},
		{name: "leading whitespace", text: "   !ping", want: true},
		{name: "prefix alone", text: "!", want: true},
		{name: "no prefix", text: "ping", want: false},
		{name: "prefix mid-text", text: "hello !ping", want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := router.IsCommand(tt.text, "!"); got != tt.want {
				t.Errorf("IsCommand(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want router.Command
	}{
		{
			name: "name only",
			text: "!ping",
			want: router.Command{Name: "ping", Args: "", Tokens: []string{}},
		},
		{
			name: "name uppercased",
			text: "!PING",
			want: router.Command{Name: "ping", Args: "", Tokens: []string{}},
		},
		{
			name: "single arg",
			text: "!weather Jakarta",
			want: router.Command{Name: "weather", Args: "Jakarta", Tokens: []string{"Jakarta"}},
		},
		{
			name: "args keep case and rejoin with single spaces",
			text: "!ai   What is   Go?",
			want: router.Command{Name: "ai", Args: "What is Go?", Tokens: []string{"What", "is", "Go?"}},
		},
		{
			name: "pipe argument stays intact",
			text: "!tts id|halo semua",
			want: router.Command{Name: "tts", Args: "id|halo semua", Tokens: []string{"id|halo", "semua"}},
		},
		{
			name: "prefix alone",
			text: "!",
			want: router.Command{},
		},
		{
			name: "prefix with only whitespace",
			text: "!   ",
			want: router.Command{},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  !short https://example.com  ",
			want: router.Command{Name: "short", Args: "https://example.com", Tokens: []string{"https://example.com"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := router.Parse(tt.text, "!")
			if got.Name != tt.want.Name || got.Args != tt.want.Args {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
			if len(got.Tokens) != len(tt.want.Tokens) {
				t.Fatalf("Parse(%q) tokens = %v, want %v", tt.text, got.Tokens, tt.want.Tokens)
			}
			if len(tt.want.Tokens) > 0 && !reflect.DeepEqual(got.Tokens, tt.want.Tokens) {
				t.Errorf("Parse(%q) tokens = %v, want %v", tt.text, got.Tokens, tt.want.Tokens)
			}
		})
	}
}
