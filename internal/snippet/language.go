package snippet

import (
	"path/filepath"
	"strings"
)

// languageByExtension mirrors the language identifiers editors assign to common file types.
var languageByExtension = map[string]string{
	".bash":  "shellscript",
	".c":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".dart":  "dart",
	".go":    "go",
	".h":     "c",
	".hpp":   "cpp",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascriptreact",
	".kt":    "kotlin",
	".lua":   "lua",
	".md":    "markdown",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".scss":  "scss",
	".sh":    "shellscript",
	".sol":   "solidity",
	".sql":   "sql",
	".swift": "swift",
	".toml":  "toml",
	".ts":    "typescript",
	".tsx":   "typescriptreact",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
	".zsh":   "shellscript",
}

var languageByFileName = map[string]string{
	"dockerfile": "dockerfile",
	"makefile":   "makefile",
}

// LanguageForPath returns the editor language identifier for filePath, or plaintext.
func LanguageForPath(filePath string) string {
	fileName := strings.ToLower(filepath.Base(strings.ReplaceAll(filePath, `\`, "/")))
	if language, found := languageByFileName[fileName]; found {
		return language
	}
	if language, found := languageByExtension[filepath.Ext(fileName)]; found {
		return language
	}
	return fallbackLanguageConstant
}
