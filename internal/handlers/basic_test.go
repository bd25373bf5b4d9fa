package handlers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gowabot/gowabot/internal/handlers"
)

func TestMenuHandlerUsesConfiguredPrefix(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	deps := testDeps(t, m)
	deps.Config.Bot.Prefix = "#"
	handler := handlers.NewMenuHandler(deps)

	e, cmd := textCommand(t, "#menu")
	if err := handler(context.Background(), e, cmd); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(m.texts) != 1 {
		t.Fatalf("texts = %d, want 1", len(m.texts))
	}
	menu := m.texts[0].text
	if !strings.Contains(menu, "#ping") || strings.Contains(menu, "!ping") {
		t.Errorf("menu should use the configured prefix, got:\n%s", menu)
	}
}

func TestPingHandlerIncludesUptime(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	handler := handlers.NewPingHandler(testDeps(t, m))

	e, cmd := textCommand(t, "!ping")
	if err := handler(context.Background(), e, cmd); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(m.texts) != 1 || !strings.Contains(m.texts[0].text, "Pong!") {
		t.Errorf("texts = %v, want a pong reply", m.texts)
	}
}

func TestOwnerHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		owner string
		want  string
	}{
		{name: "configured", owner: "628111222333", want: "628111222333"},
		{name: "unconfigured", owner: "", want: "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := &fakeMessenger{}
			deps := testDeps(t, m)
			deps.Config.Bot.OwnerNumber = tt.owner
			handler := handlers.NewOwnerHandler(deps)

			e, cmd := textCommand(t, "!owner")
			if err := handler(context.Background(), e, cmd); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if len(m.texts) != 1 || !strings.Contains(m.texts[0].text, tt.want) {
				t.Errorf("texts = %v, want reply containing %q", m.texts, tt.want)
			}
		})
	}
}

func TestUnknownHandlerSendsConfiguredReply(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	deps := testDeps(t, m)
	handler := handlers.NewUnknownHandler(deps)

	e, cmd := textCommand(t, "!nosuchcmd")
	if err := handler(context.Background(), e, cmd); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(m.texts) != 1 || m.texts[0].text != deps.Config.Bot.Messages.UnknownCommand {
		t.Errorf("texts = %v, want the unknown-command reply", m.texts)
	}
}

func TestRegisterAllCoversEveryCommand(t *testing.T) {
	t.Parallel()

	table := handlers.RegisterAll(testDeps(t, &fakeMessenger{}))
	for _, name := range []string{
		"menu", "ping", "owner",
		"sticker", "toimg", "tovn",
		"tts", "short", "qrcode",
		"ytmp3", "ytmp4",
		"ai", "weather",
		"kick", "promote", "demote", "add",
	} {
		if _, ok := table[name]; !ok {
			t.Errorf("command %q is not registered", name)
		}
	}
}
