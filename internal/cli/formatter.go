package cli

import (
	"fmt"
	"io"
	"strconv"

	"duacc/internal/duacc"
	"duacc/internal/users"
)

// printReport renders rows to w in fixed-width columns: "%15s %15s %s"
// over (Files, Size, Path) without --user, or "%15s %15s %15s %s" over
// (User, Files, Size, Path) with --user.
func printReport(w io.Writer, rows []duacc.Row, perUser, humanReadable, quiet bool, names *users.Table) {
	sizeColumn := func(n int64) string {
		if humanReadable {
			return toHuman(n)
		}

		return strconv.FormatInt(n, 10)
	}

	if perUser {
		if !quiet {
			fmt.Fprintf(w, "%15s %15s %15s %s\n", "User", "Files", "Size", "Path")
		}

		for _, r := range rows {
			user := "unknown(0)"
			if r.HasUID {
				user = names.Name(r.UID)
			}

			fmt.Fprintf(w, "%15s %15s %15s %s\n", user, strconv.FormatInt(r.Files, 10), sizeColumn(r.Size), r.Path)
		}

		return
	}

	if !quiet {
		fmt.Fprintf(w, "%15s %15s %s\n", "Files", "Size", "Path")
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%15s %15s %s\n", strconv.FormatInt(r.Files, 10), sizeColumn(r.Size), r.Path)
	}
}
