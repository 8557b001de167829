package main

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

/// LoadDialog asks for a ROM file and loads it. Returns false if nothing
/// was loaded.
///
func LoadDialog() bool {
	file, err := dialog.File().
		Filter("CHIP-8 ROMs", "ch8", "c8").
		Filter("All files", "*").
		Title("Load ROM").
		Load()

	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			Logger.Error("File dialog failed", log.Err(err))
		}
		return false
	}

	if err := Runner.LoadFile(file); err != nil {
		Logger.Error("Loading ROM failed", log.String("file", file), log.Err(err))

		// the user picked the file, tell them why it didn't load
		dialog.Message("%s", err.Error()).Title("Load ROM").Error()
		return false
	}

	return true
}
