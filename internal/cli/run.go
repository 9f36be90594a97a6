package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/majo33/atom/internal/injector"
)

type runOptions struct {
	Scene   string
	Dev     bool
	Address string
	Profile string // "", "cpu" or "mem"
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the world with hot reload",
		Long: `Load the configured scene and run the frame loop until interrupted.

Changed asset files are picked up by polling; with --dev an editor can push
change and reload requests over a websocket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scene, "scene", "", "scene file, overrides world.scene")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "enable the dev server")
	cmd.Flags().StringVar(&opts.Address, "addr", "", "dev server address, overrides devserver.address")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "write a cpu or mem profile to the working directory")

	return cmd
}

func runRun(cmd *cobra.Command, rootOpts *RootOptions, opts *runOptions) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	if opts.Scene != "" {
		cfg.World.Scene = opts.Scene
	}
	if opts.Dev {
		cfg.DevServer.Enabled = true
	}
	if opts.Address != "" {
		cfg.DevServer.Address = opts.Address
	}

	switch opts.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q: must be cpu or mem", opts.Profile)
	}

	a, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.LoadScene(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}
