package root

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
)

// idArg validates a single integer id argument.
func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func parseID(arg string) int64 {
	id, _ := strconv.ParseInt(arg, 10, 64)
	return id
}

// resolveDate turns a --date flag into a day; empty means today.
func resolveDate(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now(), nil
	}
	return engine.ParseDateKey(flag)
}
