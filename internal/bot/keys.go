package bot

// Callback keys form a closed set; payloads carry the variable part
// (charset tag or folder name) after telebot's "|" separator.
const (
	cbMainMenu         = "main_menu"
	cbLanguageSettings = "language_settings"
	cbLang             = "lang"
	cbGeneratePassword = "generate_password"
	cbRandomMix        = "random_mix"
	cbSelectedLangs    = "selected_langs"
	cbCustomLength     = "custom_length"
	cbFolders          = "folders"
	cbViewFolder       = "view_folder"
	cbCreateFolder     = "create_folder"
	cbSavePassword     = "save_password"
	cbPickFolder       = "pick_folder"
	cbAddPassword      = "add_password"
	cbSecurityInfo     = "security_info"
	cbCancelInput      = "cancel_input"
)
