package utils

import (
	"strconv"

	"filmlink/internal/errs"
)

// ParseID converts a path/query id to int64, returns InvalidArgument on junk
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.InvalidArgument("некорректный идентификатор %q", s)
	}
	return id, nil
}

// StringToInt converts string to int, returns fallback if error
func StringToInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return i
}
