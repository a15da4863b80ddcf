package bot

import (
	"errors"
	"strconv"
	"strings"

	"log/slog"

	"github.com/babelpass/babelpass/core/logger"
	tghelpers "github.com/babelpass/babelpass/core/telegram/helpers"
	"github.com/babelpass/babelpass/internal/generator"
	"github.com/babelpass/babelpass/internal/profile"

	tele "gopkg.in/telebot.v4"
)

// AwaitingInput reports whether the sender has an armed text prompt.
// It implements router.PendingGate.
func (a *App) AwaitingInput(c tele.Context) bool {
	ctx := tghelpers.BuildContext(c)
	pending, err := a.store.PendingInput(ctx, c.Sender().ID)
	if err != nil {
		logger.Warn(ctx, "service.profiles", "pending.read_failed",
			slog.String("err", err.Error()),
		)
		return false
	}
	return pending != profile.PendingNone
}

// HandleInput consumes the armed prompt and routes the message text to it.
func (a *App) HandleInput(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	pending, err := a.store.ConsumePendingInput(ctx, userID)
	if err != nil {
		return a.fail(c, err)
	}

	switch pending {
	case profile.PendingFolderName:
		return a.handleFolderName(c, userID)
	case profile.PendingLength:
		return a.handleCustomLength(c, userID)
	default:
		// Prompt was cleared between the gate check and here.
		return a.unknownText(c)
	}
}

func (a *App) handleFolderName(c tele.Context, userID int64) error {
	ctx := tghelpers.BuildContext(c)
	name := strings.TrimSpace(c.Text())
	if name == "" {
		if err := a.store.SetPendingInput(ctx, userID, profile.PendingFolderName); err != nil {
			return a.fail(c, err)
		}
		return tghelpers.SendText(c, textEmptyFolderName)
	}

	if err := a.store.CreateFolder(ctx, userID, name); err != nil {
		if errors.Is(err, profile.ErrDuplicateFolder) {
			// Keep the prompt armed, same as rejecting and asking again.
			if err := a.store.SetPendingInput(ctx, userID, profile.PendingFolderName); err != nil {
				return a.fail(c, err)
			}
			return tghelpers.SendText(c, textDuplicateFolder)
		}
		return a.fail(c, err)
	}

	logger.Info(ctx, "service.profiles", "folder.created",
		slog.String("folder", logger.SanitizeLimit(name, 64)),
	)
	return tghelpers.SendMD(c, folderCreatedText(name), folderCreatedMarkup())
}

func (a *App) handleCustomLength(c tele.Context, userID int64) error {
	ctx := tghelpers.BuildContext(c)

	length, ok := parseLength(c.Text())
	if !ok {
		if err := a.store.SetPendingInput(ctx, userID, profile.PendingLength); err != nil {
			return a.fail(c, err)
		}
		return tghelpers.SendText(c, invalidLengthText(1, generator.MaxLength))
	}

	snap, err := a.store.GetOrCreate(ctx, userID)
	if err != nil {
		return a.fail(c, err)
	}
	password, err := a.gen.Generate(length, snap.Languages)
	if err != nil {
		return a.fail(c, err)
	}
	if err := a.store.SetLastGenerated(ctx, userID, password); err != nil {
		return a.fail(c, err)
	}

	logger.Info(ctx, "service.generator", "password.generated",
		slog.String("mode", "combined"),
		slog.Int("length", length),
		slog.String("tags", joinTags(snap.Languages)),
	)
	return tghelpers.SendMD(c, selectedPasswordText(password, length, snap.Languages), passwordResultMarkup(cbSelectedLangs))
}

// parseLength accepts a whole number in [1, generator.MaxLength].
func parseLength(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > generator.MaxLength {
		return 0, false
	}
	return n, true
}
