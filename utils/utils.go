package utils

import (
	"fmt"
	"runtime"
	"slices"

	"statline/config"
)

func ErrorWithTrace(e error) error {
	_, file, line, _ := runtime.Caller(1)
	return fmt.Errorf("%s:%d\n\t%w", file, line, e)
}

func IsInvalidSeason(season string) bool {
	return !slices.Contains(config.ValidSeasons, season)
}
