// Command binwrap is the executable exposed by the wrapper package. It
// locates or downloads the platform-native binary and runs it with the
// caller's arguments, mirroring its exit status.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/cli"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/launch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Arguments belong to the native binary; none are interpreted here.
	err := cli.Run(ctx, cli.Options{}, os.Args[1:])
	cancel()

	if err == nil {
		return
	}

	cli.Report(os.Stderr, "binwrap", err)
	launch.Reraise(err)
	os.Exit(cli.ExitCode(err))
}
