// Command binwrap-install is the postinstall hook. It downloads the
// platform-native binary when the package manager skipped the optional
// platform package.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewInstallCommand(cli.Options{}).ExecuteContext(ctx); err != nil {
		cli.Report(os.Stderr, "binwrap-install", err)
		os.Exit(cli.ExitCode(err))
	}
}
