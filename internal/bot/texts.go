package bot

import (
	"fmt"
	"strings"

	"github.com/babelpass/babelpass/core/telegram/format"
	"github.com/babelpass/babelpass/internal/charset"
	"github.com/babelpass/babelpass/internal/profile"
)

const (
	textLanguageSettings = "🌍 *Password language settings:*\n\n" +
		"Pick the languages used for generation:\n" +
		"• Several can be selected at once\n" +
		"• Their characters are mixed together\n" +
		"• More languages, stronger passwords!"

	textGenerateMenu = "🔐 *Password generation:*\n\n" +
		"Pick the generation mode:\n" +
		"• 🎲 Random mix - languages chosen automatically\n" +
		"• 🔤 Selected languages - uses your settings\n" +
		"• 🔢 Custom length - exact length"

	textFoldersEmpty = "📁 *My folders*\n\n" +
		"You have no password folders yet.\n" +
		"Create the first one to organize your passwords!"

	textFoldersList = "📁 *My password folders:*\n\n" +
		"Pick a folder to view its passwords:"

	textCreateFolderPrompt = "📝 *New folder*\n\n" +
		"Send a name for the new folder.\n\n" +
		"Examples: 🌐 Social, 🎮 Games, 💳 Banks"

	textCustomLengthPrompt = "🔢 *Custom length*\n\n" +
		"Send the desired password length (1-128).\n" +
		"It will be generated from your selected languages."

	textPickFolder = "💾 *Save password*\n\nPick a folder:"

	textSaveNoFolders = "💾 *Save password*\n\n" +
		"You have no folders yet. Create one first!"

	textDuplicateFolder = "❌ A folder with that name already exists!"
	textEmptyFolderName = "❌ The folder name cannot be empty."
	textFolderNotFound  = "❌ That folder no longer exists."
	textNoLastPassword  = "Generate a password first, then save it."
	textInputCancelled  = "Okay, cancelled."
	textUnknownText     = "I did not get that. Use /start to open the menu."
	textInternalError   = "Something went wrong, try again."

	textSecurityInfo = "🛡️ *Why multilingual passwords are strong* 🌍\n\n" +
		"✨ *Advantages:*\n" +
		"• 🔤 8+ writing systems mean huge entropy\n" +
		"• 🌍 Mixed scripts\n" +
		"• 💪 Resistant to brute-force attacks\n" +
		"• 🎯 Unique combinations\n\n" +
		"📊 *Numbers:*\n" +
		"• English alphabet: 52 characters\n" +
		"• + Russian: + 66 characters\n" +
		"• + Greek: + 48 characters\n" +
		"• + Math: + 50 characters\n" +
		"• *Total: 200+ unique characters!*\n\n" +
		"🔒 *Guarantees:*\n" +
		"• Passwords are generated locally\n" +
		"• Nothing leaves the bot\n" +
		"• Full anonymity"
)

func welcomeText(firstName string) string {
	name := escapeMD(firstName)
	if name == "" {
		name = "there"
	}
	return "🔐 *Multilingual Password Generator* 🌍\n\n" +
		fmt.Sprintf("Hi, %s! I build extra-strong passwords from the characters of the world's writing systems! 🚀\n\n", name) +
		"✨ *Highlights:*\n" +
		"• 🔤 Characters from 8+ languages\n" +
		"• 🌍 Script mixing\n" +
		"• 💪 Unique combinations\n" +
		"• 🔒 Maximum strength\n\n" +
		"Pick an action:"
}

func mainMenuText(firstName string) string {
	name := escapeMD(firstName)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("🔐 *Multilingual Password Generator* 🌍\n\nHi, %s! Pick an action:", name)
}

func toggleText(tag charset.Tag, added bool, current []charset.Tag) string {
	status := "❌ Removed"
	if added {
		status = "✅ Added"
	}
	return fmt.Sprintf("%s language: *%s*\n\n📋 *Current languages:* %s\n\nPasswords will now draw from these languages! 🌍",
		status, tagLabel(tag), languagesLine(current))
}

func mixedPasswordText(password string, length int, tags []charset.Tag) string {
	return fmt.Sprintf("🎲 *Random multilingual password:*\n\n"+
		"🔑 *Password:* %s\n"+
		"📏 *Length:* %d characters\n"+
		"🌍 *Languages used:* %s\n\n"+
		"💪 *Strength:* MAXIMUM ⭐",
		codeSpan(password), length, languagesLine(tags))
}

func selectedPasswordText(password string, length int, tags []charset.Tag) string {
	return fmt.Sprintf("🔤 *Password from selected languages:*\n\n"+
		"🔑 *Password:* %s\n"+
		"📏 *Length:* %d characters\n"+
		"🌍 *Languages used:* %s\n\n"+
		"✨ Personalized generation!",
		codeSpan(password), length, languagesLine(tags))
}

func folderCreatedText(name string) string {
	return fmt.Sprintf("✅ Folder '*%s*' created!\nYou can now save passwords into it.", escapeMD(name))
}

func passwordSavedText(folder string) string {
	return fmt.Sprintf("💾 Password saved to '*%s*'.", escapeMD(folder))
}

func folderEntriesText(name string, entries []profile.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📂 *%s* (%d passwords)\n", escapeMD(name), len(entries))
	if len(entries) == 0 {
		b.WriteString("\nThe folder is empty. Generate a password and save it here.")
		return b.String()
	}
	for i, e := range entries {
		fmt.Fprintf(&b, "\n%d. %s", i+1, codeSpan(e.Password))
	}
	return b.String()
}

func invalidLengthText(min, max int) string {
	return fmt.Sprintf("❌ Send a whole number between %d and %d.", min, max)
}

// languagesLine renders tags as a comma-separated list of display labels.
func languagesLine(tags []charset.Tag) string {
	if len(tags) == 0 {
		return tagLabel(charset.English)
	}
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = tagLabel(t)
	}
	return strings.Join(labels, ", ")
}

// tagLabel capitalizes a charset tag for display.
func tagLabel(tag charset.Tag) string {
	s := string(tag)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// codeSpan wraps a password in a Markdown code span. None of the registry
// charsets contain a backtick, so the span cannot be broken from inside.
func codeSpan(s string) string {
	return "`" + s + "`"
}

func escapeMD(s string) string {
	out, err := format.EscapeMarkdown(s, format.MarkdownV1)
	if err != nil {
		return s
	}
	return out
}
