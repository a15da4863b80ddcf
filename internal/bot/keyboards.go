package bot

import (
	"fmt"

	"github.com/babelpass/babelpass/core/telegram/keyboard"
	"github.com/babelpass/babelpass/internal/charset"
	"github.com/babelpass/babelpass/internal/profile"

	tele "gopkg.in/telebot.v4"
)

const backLabel = "🔙 Back"

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🔐 Generate password", Unique: cbGeneratePassword}},
		[]keyboard.InlineBtn{{Text: "🌍 Language settings", Unique: cbLanguageSettings}},
		[]keyboard.InlineBtn{
			{Text: "📁 My folders", Unique: cbFolders},
			{Text: "➕ Add password", Unique: cbAddPassword},
		},
		[]keyboard.InlineBtn{{Text: "🔒 Security", Unique: cbSecurityInfo}},
	)
}

func languageSettingsMarkup(tags []charset.Tag) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(tags))
	for _, tag := range tags {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   "🔤 " + tagLabel(tag),
			Unique: cbLang,
			Data:   string(tag),
		})
	}
	rows := keyboard.ChunkButtons(buttons, 2)
	rows = append(rows,
		[]keyboard.InlineBtn{{Text: "🎲 Auto mix", Unique: cbRandomMix}},
		[]keyboard.InlineBtn{{Text: backLabel, Unique: cbMainMenu}},
	)
	return keyboard.InlineButtonsRows(rows...)
}

func backToSettingsMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 Back to settings", Unique: cbLanguageSettings},
	})
}

func generateMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🎲 Random mix", Unique: cbRandomMix},
		{Text: "🔤 Selected languages", Unique: cbSelectedLangs},
		{Text: "🔢 Custom length", Unique: cbCustomLength},
		{Text: backLabel, Unique: cbMainMenu},
	})
}

func passwordResultMarkup(regenerate string) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔄 Generate another", Unique: regenerate},
		{Text: "💾 Save to folder", Unique: cbSavePassword},
		{Text: backLabel, Unique: cbGeneratePassword},
	})
}

func foldersMarkup(folders []profile.FolderInfo) *tele.ReplyMarkup {
	if len(folders) == 0 {
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "📁 Create the first folder", Unique: cbCreateFolder},
		})
	}
	rows := make([][]keyboard.InlineBtn, 0, len(folders)+2)
	for _, f := range folders {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("📂 %s (%d passwords)", f.Name, f.Entries),
			Unique: cbViewFolder,
			Data:   f.Name,
		}})
	}
	rows = append(rows,
		[]keyboard.InlineBtn{{Text: "➕ Create folder", Unique: cbCreateFolder}},
		[]keyboard.InlineBtn{{Text: backLabel, Unique: cbMainMenu}},
	)
	return keyboard.InlineButtonsRows(rows...)
}

func pickFolderMarkup(folders []profile.FolderInfo) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(folders)+1)
	for _, f := range folders {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   "📂 " + f.Name,
			Unique: cbPickFolder,
			Data:   f.Name,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: backLabel, Unique: cbMainMenu}})
	return keyboard.InlineButtonsRows(rows...)
}

func folderViewMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📁 All folders", Unique: cbFolders},
		{Text: backLabel, Unique: cbMainMenu},
	})
}

func passwordSavedMarkup(folder string) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📂 View folder", Unique: cbViewFolder, Data: folder},
		{Text: backLabel, Unique: cbMainMenu},
	})
}

func folderCreatedMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📁 View folders", Unique: cbFolders},
	})
}

func cancelInputMarkup() *tele.ReplyMarkup {
	return keyboard.SingleCancelMarkup(cbCancelInput)
}

func backToMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: backLabel, Unique: cbMainMenu},
	})
}
