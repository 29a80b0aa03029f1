package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Server
		"Listening on %s":                  "%s で待ち受け中",
		"Shutting down...":                 "シャットダウン中...",
		"Upload received: %s (%d bytes)":   "アップロードを受信: %s (%d バイト)",
		"Screenshot cached: %s (%d bytes)": "スクリーンショットをキャッシュ: %s (%d バイト)",
		"Screenshot downloaded: %s":        "スクリーンショットをダウンロード: %s",
		"Stale session, cache cleared":     "古いセッションのためキャッシュを消去しました",

		// Capture
		"Launching browser":        "ブラウザを起動中",
		"Content box: %.0fx%.0f":   "コンテンツ領域: %.0fx%.0f",
		"Viewport fitted to %dx%d": "ビューポートを %dx%d に調整",
		"Captured %d bytes":        "%d バイトをキャプチャしました",

		// Errors
		"Render failed: %s":   "画像生成に失敗しました: %s",
		"Shutdown failed: %s": "シャットダウンに失敗しました: %s",
	})
}
