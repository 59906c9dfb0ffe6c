// Devserve serves the Constellation Viewer src/ directory for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"constellation.io/devserve/devserver"
	"fortio.org/cli"
	"fortio.org/duration"
	"fortio.org/log"
	"fortio.org/struct2env"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	BaseDir string
	Bind    string
	Port    int
}

var config = Config{Port: devserver.DefaultPort}

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("DEVSERVE_", res, true)
	fmt.Fprintln(w, "# Devserve environment variables:")
	fmt.Fprint(w, str)
}

func Main() int {
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	errs := struct2env.SetFromEnv("DEVSERVE_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	baseDir := flag.String("base", config.BaseDir,
		"project `directory` containing src/ (default is the directory of the devserve binary)")
	bind := flag.String("bind", config.Bind, "`address` to listen on, empty for all interfaces")
	port := flag.Int("port", config.Port, "preferred `port`, the next one is used if it's already taken")
	shutdownTimeout := duration.Flag("shutdown-timeout", devserver.DefaultShutdownTimeout,
		"how long to wait for the in-flight request when interrupted")
	mimeTypes := make(map[string]string)
	flag.Func("mime", "extra content type override as `ext=type`, e.g. .wasm=application/wasm (can be repeated)",
		func(s string) error {
			ext, ctype, err := devserver.ParseOverride(s)
			if err != nil {
				return err
			}
			mimeTypes[ext] = ctype
			return nil
		})
	cli.MaxArgs = 0
	cli.Main()
	log.Infof("devserve %s", cli.LongVersion)
	if err := devserver.ValidatePort(*port); err != nil {
		return log.FErrf("Invalid port %d: %v", *port, err)
	}
	base := *baseDir
	if base == "" {
		var err error
		base, err = devserver.ExecutableDir()
		if err != nil {
			return log.FErrf("Can't find the devserve binary location: %v", err)
		}
	}
	root, err := devserver.ContentRoot(base)
	if err != nil {
		if errors.Is(err, devserver.ErrNoContentRoot) {
			return log.FErrf("Error: %v - please run devserve from the constellation project root directory (or use -base)", err)
		}
		return log.FErrf("Error resolving content root: %v", err)
	}
	ctx, stop := devserver.InterruptContext(context.Background())
	defer stop()
	s := devserver.New(devserver.Config{
		Root:            root,
		Bind:            *bind,
		Port:            *port,
		MIMETypes:       mimeTypes,
		ShutdownTimeout: *shutdownTimeout,
	}, nil)
	if err := s.Listen(ctx); err != nil {
		return log.FErrf("%v", err)
	}
	if err := s.Serve(ctx); err != nil {
		return log.FErrf("%v", err)
	}
	return 0
}
