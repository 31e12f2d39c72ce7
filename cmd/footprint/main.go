// Command footprint calculates corporate carbon footprints.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/pkg/version"
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// extractExitCode returns the exit code carried by a *cli.ExitError, 1 for
// any other error and 0 for nil.
func extractExitCode(err error) int {
	return cli.ExitCode(err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(extractExitCode(err))
	}
}
