package cli

import (
	"fmt"
	"os"

	"github.com/sealog-project/sealog/internal/repo"
	"github.com/sealog-project/sealog/pkg/color"
)

// requireWorkspace discovers the workspace from CWD and returns it, or exits
// with an error.
func requireWorkspace() *repo.Workspace {
	cwd, err := os.Getwd()
	if err != nil {
		fmtErr("cannot get current directory: %v", err)
		os.Exit(1)
	}
	w, err := repo.Discover(cwd)
	if err != nil {
		fmtErr("not a sealog workspace: %v", err)
		os.Exit(1)
	}
	return w
}

func fmtErr(format string, args ...any) {
	prefix := "sealog: "
	if color.Enabled() {
		prefix = color.Error("sealog:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
