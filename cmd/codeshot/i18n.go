// Package main provides localization for the codeshot CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		"Serve a web UI that turns source files into syntax-highlighted PNG screenshots": "ソースファイルをシンタックスハイライト付きPNG画像に変換するWeb UIを起動",

		// Flags
		"Path to a YAML config file":                        "YAML設定ファイルのパス",
		"HTTP listen address (overrides config)":            "HTTP待ち受けアドレス（設定を上書き）",
		"Capture backend: webkit or chrome (overrides config)": "キャプチャバックエンド: webkit または chrome（設定を上書き）",
		"Path to Chrome executable for the chrome backend (falls back to CHROME_PATH env, then system default)": "chromeバックエンド用のChrome実行ファイルパス（CHROME_PATH環境変数、システム既定の順でフォールバック）",
		"Chroma style name for highlighting (overrides config)": "ハイライトに使うChromaスタイル名（設定を上書き）",
		"Append a filename caption bar under each screenshot":   "各スクリーンショットの下にファイル名キャプションを追加",
		"Log level (debug, info, warn, error)":                  "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                               "すべてのログ出力を抑制",

		// Runtime
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
	})
}
