package logging

import "log/slog"

// LevelFromString maps a config value like "DEBUG" or "warn" onto a
// slog level. Nil or unrecognized values fall back to Info.
func LevelFromString(str *string) slog.Level {
	if str == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(*str)); err != nil {
		return slog.LevelInfo
	}
	return level
}
