package telegram

import (
	"testing"

	"github.com/babelpass/babelpass/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()

	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Open the main menu", Aliases: []string{"menu"}})
	reg.RegisterCommand("/version", commands.Command{Handler: noopHandler, Description: "Build info", AdminOnly: true})
	reg.RegisterCommand("noslash", commands.Command{Handler: noopHandler, Description: "rejected"})
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "duplicate"})
	reg.RegisterCommand("/bad", commands.Command{Description: "nil handler"})

	if got := len(reg.Commands()); got != 2 {
		t.Fatalf("expected 2 commands, got %d", got)
	}

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("expected only /start visible, got %+v", visible)
	}
	if visible[0].Description != "Open the main menu" {
		t.Fatalf("duplicate registration overwrote command: %q", visible[0].Description)
	}

	key, _, ok := reg.LookupCommand("menu")
	if !ok || key != "/start" {
		t.Fatalf("alias lookup failed: key=%q ok=%v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("/missing"); ok {
		t.Fatal("unexpected lookup hit for /missing")
	}
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterCallback("folders", noopHandler); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("folders", noopHandler); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.RegisterCallback("", noopHandler); err == nil {
		t.Fatal("expected empty key error")
	}

	if _, ok := reg.GetCallback("folders"); !ok {
		t.Fatal("expected registered callback")
	}
	if _, ok := reg.GetCallback("missing"); ok {
		t.Fatal("unexpected callback hit")
	}

	if err := reg.RegisterCallback("create_folder", noopHandler); err != nil {
		t.Fatalf("register: %v", err)
	}
	keys := reg.ListCallbacks()
	if len(keys) != 2 || keys[0] != "create_folder" || keys[1] != "folders" {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
}
