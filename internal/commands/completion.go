package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// DraftCompleter completes positional draft arguments with the drafts in
// the drafts directory. A partially typed argument narrows the list by file
// name prefix; an argument starting with "-" completes flags instead.
func DraftCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		prefix := ""
		if args := cmd.Args(); args.Present() {
			prefix = args.Get(args.Len() - 1)
		}
		if strings.HasPrefix(prefix, "-") {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return
		}
		if flags.Config == nil {
			return
		}

		paths, err := expandDrafts(nil, flags.Config.DraftsDir())
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, p := range paths {
			if matchesDraftPrefix(p, prefix) {
				_, _ = fmt.Fprintln(w, p)
			}
		}
	}
}

// matchesDraftPrefix reports whether the typed prefix selects path, either
// as a path prefix or as a prefix of the file name.
func matchesDraftPrefix(path, prefix string) bool {
	if prefix == "" || strings.HasPrefix(path, prefix) {
		return true
	}
	i := strings.LastIndexByte(path, '/')
	return strings.HasPrefix(path[i+1:], prefix)
}
