package bot

import (
	"errors"
	"fmt"
	"strings"

	"log/slog"

	"github.com/babelpass/babelpass/core/buildinfo"
	"github.com/babelpass/babelpass/core/logger"
	"github.com/babelpass/babelpass/core/telegram/callbacks"
	tghelpers "github.com/babelpass/babelpass/core/telegram/helpers"
	"github.com/babelpass/babelpass/internal/charset"
	"github.com/babelpass/babelpass/internal/profile"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if _, err := a.store.GetOrCreate(ctx, c.Sender().ID); err != nil {
		return a.fail(c, err)
	}
	return tghelpers.SendMD(c, welcomeText(firstName(c)), mainMenuMarkup())
}

func (a *App) handleVersion(c tele.Context) error {
	v := fmt.Sprintf("babelpass %s (%s)", buildinfo.Version, buildinfo.Commit)
	if buildinfo.Date != "" {
		v += " built " + buildinfo.Date
	}
	return tghelpers.SendText(c, v)
}

func (a *App) cbMainMenu(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, mainMenuText(firstName(c)), mainMenuMarkup())
}

func (a *App) cbLanguageSettings(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, textLanguageSettings, languageSettingsMarkup(a.gen.Registry().Tags()))
}

func (a *App) cbToggleLanguage(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	tag, ok := callbacks.PayloadString(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown language"})
	}

	added, langs, err := a.store.ToggleLanguage(ctx, c.Sender().ID, charset.Tag(tag))
	if err != nil {
		return a.fail(c, err)
	}
	logger.Info(ctx, "service.profiles", "language.toggled",
		slog.String("tags", tag),
		slog.Bool("added", added),
		slog.Int("selected", len(langs)),
	)
	return tghelpers.EditOrSendMD(c, toggleText(charset.Tag(tag), added, langs), backToSettingsMarkup())
}

func (a *App) cbGenerateMenu(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, textGenerateMenu, generateMenuMarkup())
}

func (a *App) cbRandomMix(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	length := a.gen.DefaultLength()

	password, tags, err := a.gen.GenerateMixed(length)
	if err != nil {
		return a.fail(c, err)
	}
	if err := a.store.SetLastGenerated(ctx, c.Sender().ID, password); err != nil {
		return a.fail(c, err)
	}
	logger.Info(ctx, "service.generator", "password.generated",
		slog.String("mode", "mixed"),
		slog.Int("length", length),
		slog.String("tags", joinTags(tags)),
	)
	return tghelpers.EditOrSendMD(c, mixedPasswordText(password, length, tags), passwordResultMarkup(cbRandomMix))
}

func (a *App) cbSelectedLangs(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	snap, err := a.store.GetOrCreate(ctx, c.Sender().ID)
	if err != nil {
		return a.fail(c, err)
	}

	length := a.gen.DefaultLength()
	password, err := a.gen.Generate(length, snap.Languages)
	if err != nil {
		return a.fail(c, err)
	}
	if err := a.store.SetLastGenerated(ctx, c.Sender().ID, password); err != nil {
		return a.fail(c, err)
	}
	logger.Info(ctx, "service.generator", "password.generated",
		slog.String("mode", "combined"),
		slog.Int("length", length),
		slog.String("tags", joinTags(snap.Languages)),
	)
	return tghelpers.EditOrSendMD(c, selectedPasswordText(password, length, snap.Languages), passwordResultMarkup(cbSelectedLangs))
}

func (a *App) cbCustomLength(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.store.SetPendingInput(ctx, c.Sender().ID, profile.PendingLength); err != nil {
		return a.fail(c, err)
	}
	return tghelpers.EditOrSendMD(c, textCustomLengthPrompt, cancelInputMarkup())
}

func (a *App) cbFolders(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	folders, err := a.store.ListFolders(ctx, c.Sender().ID)
	if err != nil {
		return a.fail(c, err)
	}
	if len(folders) == 0 {
		return tghelpers.EditOrSendMD(c, textFoldersEmpty, foldersMarkup(nil))
	}
	return tghelpers.EditOrSendMD(c, textFoldersList, foldersMarkup(folders))
}

func (a *App) cbViewFolder(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	name, ok := callbacks.PayloadString(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown folder"})
	}

	entries, err := a.store.ListEntries(ctx, c.Sender().ID, name)
	if errors.Is(err, profile.ErrFolderNotFound) {
		return tghelpers.EditOrSendMD(c, textFolderNotFound, folderViewMarkup())
	}
	if err != nil {
		return a.fail(c, err)
	}
	return tghelpers.EditOrSendMD(c, folderEntriesText(name, entries), folderViewMarkup())
}

func (a *App) cbCreateFolder(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.store.SetPendingInput(ctx, c.Sender().ID, profile.PendingFolderName); err != nil {
		return a.fail(c, err)
	}
	return tghelpers.EditOrSendMD(c, textCreateFolderPrompt, cancelInputMarkup())
}

func (a *App) cbSavePassword(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	_, ok, err := a.store.LastGenerated(ctx, c.Sender().ID)
	if err != nil {
		return a.fail(c, err)
	}
	if !ok {
		return tghelpers.EditOrSendMD(c, textNoLastPassword, backToMenuMarkup())
	}

	folders, err := a.store.ListFolders(ctx, c.Sender().ID)
	if err != nil {
		return a.fail(c, err)
	}
	if len(folders) == 0 {
		return tghelpers.EditOrSendMD(c, textSaveNoFolders, foldersMarkup(nil))
	}
	return tghelpers.EditOrSendMD(c, textPickFolder, pickFolderMarkup(folders))
}

func (a *App) cbPickFolder(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	name, ok := callbacks.PayloadString(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown folder"})
	}

	password, has, err := a.store.LastGenerated(ctx, c.Sender().ID)
	if err != nil {
		return a.fail(c, err)
	}
	if !has {
		return tghelpers.EditOrSendMD(c, textNoLastPassword, backToMenuMarkup())
	}

	if _, err := a.store.SaveToFolder(ctx, c.Sender().ID, name, password); err != nil {
		if errors.Is(err, profile.ErrFolderNotFound) {
			return tghelpers.EditOrSendMD(c, textFolderNotFound, folderViewMarkup())
		}
		return a.fail(c, err)
	}
	logger.Info(ctx, "service.profiles", "password.saved",
		slog.String("folder", logger.SanitizeLimit(name, 64)),
	)
	return tghelpers.EditOrSendMD(c, passwordSavedText(name), passwordSavedMarkup(name))
}

func (a *App) cbSecurityInfo(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, textSecurityInfo, backToMenuMarkup())
}

func (a *App) cbCancelInput(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.store.SetPendingInput(ctx, c.Sender().ID, profile.PendingNone); err != nil {
		return a.fail(c, err)
	}
	return tghelpers.EditOrSendMD(c, textInputCancelled, mainMenuMarkup())
}

func (a *App) unknownText(c tele.Context) error {
	return tghelpers.SendText(c, textUnknownText)
}

// UnknownText returns the fallback handler for unmatched text messages.
func (a *App) UnknownText() tele.HandlerFunc { return a.unknownText }

// UnknownCallback returns the fallback handler for unregistered callback keys.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
}

func (a *App) fail(c tele.Context, err error) error {
	_ = tghelpers.SendText(c, textInternalError)
	return err
}

func firstName(c tele.Context) string {
	if u := c.Sender(); u != nil {
		return u.FirstName
	}
	return ""
}

func joinTags(tags []charset.Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
