package common

// Embed colors
const (
	ColorPrimary = 0x5865F2 // blurple
	ColorSuccess = 0x57F287
	ColorWarning = 0xFEE75C
	ColorError   = 0xED4245
)
