package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/swaysplit/internal/config"
	"github.com/yourusername/swaysplit/internal/ipc"
	"github.com/yourusername/swaysplit/internal/logging"
	"github.com/yourusername/swaysplit/internal/models"
	"github.com/yourusername/swaysplit/internal/output"
	"github.com/yourusername/swaysplit/internal/socket"
	"github.com/yourusername/swaysplit/internal/split"
)

var (
	socketPath string
	configPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool
	reverse    bool

	// Color functions
	errorColor = color.New(color.FgRed, color.Bold)
	keyColor   = color.New(color.FgYellow)
)

// rootCmd splits the focused window and runs the given command in the new container
var rootCmd = &cobra.Command{
	Use:   "swaysplit [flags] [--] [command [args...]]",
	Short: "Smart split and execute for sway and i3",
	Long: `swaysplit looks at the focused window, splits it along its longer side
and launches the given command in the new container.

Wide windows are split horizontally, tall windows vertically. Use --reverse
to invert that choice. Without a command only the split is applied.

Everything after the first non-flag argument is passed to the command
unchanged, so "swaysplit foot -e htop" works as expected.

A command named like one of the subcommands below (tree, focused, raw,
compositor, socket) runs the subcommand instead. Put "--" before it to
launch the program: "swaysplit -- tree -a".`,
	Version:      "0.1.0",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			printError(err.Error())
			return err
		}

		rev := s.cfg.Reverse
		if cmd.Flags().Changed("reverse") {
			rev = reverse
		}

		c, err := ipc.Connect(cmd.Context(), s.socket.Path, s.opts)
		if err != nil {
			printError(err.Error())
			return err
		}
		defer c.Close()

		o, err := smartSplit(cmd.Context(), c, args, rev)
		if err != nil {
			printIPCError(err)
			return err
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"orientation": o.String(),
				"command":     split.Compose(o, args),
			})
		}
		return nil
	},
}

// treeCmd prints the layout tree
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the layout tree",
	Long: `Retrieves the compositor's layout tree and prints it with the focused
node marked. Only tiling children are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := withClient(cmd, func(ctx context.Context, c *ipc.Client, _ *settings) (*models.Node, error) {
			return c.GetTree(ctx)
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(tree)
		}

		output.PrintTree(tree, getTreeOptions())
		return nil
	},
}

// Tree flags
var (
	treeASCII   bool
	treeUnicode bool
	treeNoIDs   bool
	treeNoRects bool
	treeWidth   int
)

// focusedCmd shows the focused window and the split that would be chosen
var focusedCmd = &cobra.Command{
	Use:   "focused",
	Short: "Show the focused window and the split it would get",
	Long:  `Finds the focused node in the layout tree and prints its geometry together with the orientation swaysplit would pick.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rev bool
		tree, err := withClient(cmd, func(ctx context.Context, c *ipc.Client, s *settings) (*models.Node, error) {
			rev = s.cfg.Reverse
			if cmd.Flags().Changed("reverse") {
				rev = reverse
			}
			return c.GetTree(ctx)
		})
		if err != nil {
			return err
		}

		node := models.FindFocused(tree)
		width, height := node.Size()
		o := split.Decide(width, height, rev)

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"node":        node,
				"width":       width,
				"height":      height,
				"orientation": o.String(),
			})
		}

		output.PrintFocused(node, o)
		return nil
	},
}

// rawCmd sends a command string as-is
var rawCmd = &cobra.Command{
	Use:   "raw <command...>",
	Short: "Run a raw compositor command",
	Long: `Sends the arguments, joined by spaces, as a single RUN_COMMAND request and
prints the result of every subcommand.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")

		var cmdErr *ipc.CommandError
		results, err := withClient(cmd, func(ctx context.Context, c *ipc.Client, _ *settings) ([]models.CommandResult, error) {
			results, err := c.RunCommand(ctx, command)
			if errors.As(err, &cmdErr) {
				return results, nil
			}
			return results, err
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := printJSON(results); err != nil {
				return err
			}
		} else {
			output.PrintCommandResults(command, results)
		}

		if cmdErr != nil {
			return cmdErr
		}
		return nil
	},
}

// compositorCmd queries the compositor version
var compositorCmd = &cobra.Command{
	Use:   "compositor",
	Short: "Show the compositor version",
	Long:  `Sends a GET_VERSION request and prints the compositor's version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		v, err := withClient(cmd, func(ctx context.Context, c *ipc.Client, _ *settings) (*models.VersionInfo, error) {
			return c.GetVersion(ctx)
		})
		elapsed := time.Since(start)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(v)
		}

		keyColor.Print("Compositor: ")
		fmt.Println(v.String())
		if v.LoadedConfigFileName != "" {
			keyColor.Print("Config: ")
			fmt.Println(v.LoadedConfigFileName)
		}
		fmt.Printf("Response time: %v\n", elapsed)
		return nil
	},
}

// socketCmd prints the resolved IPC endpoint
var socketCmd = &cobra.Command{
	Use:   "socket",
	Short: "Show the IPC socket that would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			printError(err.Error())
			return err
		}

		if jsonOutput {
			return printJSON(s.socket)
		}

		keyColor.Print("Socket: ")
		fmt.Println(s.socket.Path)
		keyColor.Print("Source: ")
		fmt.Println(s.socket.Source)
		keyColor.Print("Timeout: ")
		fmt.Println(s.opts.Timeout)
		keyColor.Print("Max payload: ")
		fmt.Println(config.FormatSize(s.opts.MaxPayload))
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&socketPath, "socket", "s", "", "IPC socket path (default: $SWAYSOCK, $I3SOCK, or discovered)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.GetConfigPath()+")")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", ipc.DefaultTimeout, "Per-request timeout, 0 to wait forever")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Reverse split logic")
	// Flags after the command belong to the command
	rootCmd.Flags().SetInterspersed(false)

	focusedCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Reverse split logic")

	treeCmd.Flags().BoolVar(&treeASCII, "ascii", false, "Use ASCII branches")
	treeCmd.Flags().BoolVar(&treeUnicode, "unicode", false, "Use Unicode branches")
	treeCmd.Flags().BoolVar(&treeNoIDs, "no-ids", false, "Hide node IDs")
	treeCmd.Flags().BoolVar(&treeNoRects, "no-rects", false, "Hide node sizes")
	treeCmd.Flags().IntVar(&treeWidth, "width", 0, "Maximum line width (default: terminal width)")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(focusedCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(compositorCmd)
	rootCmd.AddCommand(socketCmd)

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error().Err(err).Msg("command failed")
		logging.Close()
		os.Exit(1)
	}
}

// smartSplit picks the orientation from the focused window and sends
// the split + exec command
func smartSplit(ctx context.Context, c *ipc.Client, command []string, rev bool) (split.Orientation, error) {
	width, height, err := c.FocusedWindowSize(ctx)
	if err != nil {
		return split.None, err
	}

	o := split.Decide(width, height, rev)
	if err := c.RunSplitAndExecute(ctx, o, command); err != nil {
		return o, err
	}
	return o, nil
}

// settings is the resolved configuration for one invocation
type settings struct {
	cfg    *config.Config
	opts   ipc.Options
	socket socket.Location
}

// loadSettings merges flags, the config file and socket discovery.
// Flags win over the config file, which wins over the environment.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.IPCOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cmd.Flags().Changed("timeout") {
		if timeout < 0 {
			return nil, fmt.Errorf("timeout must not be negative: %v", timeout)
		}
		opts.Timeout = timeout
	}

	loc, err := resolveSocket(cmd.Context(), socketPath, cfg.Socket, socket.NewDiscoverer())
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("socket", loc.Path).
		Str("source", loc.Source).
		Dur("timeout", opts.Timeout).
		Uint32("max_payload", opts.MaxPayload).
		Msg("settings resolved")

	return &settings{cfg: cfg, opts: opts, socket: loc}, nil
}

// resolveSocket applies flag > config > discovery precedence
func resolveSocket(ctx context.Context, flagPath, cfgPath string, d *socket.Discoverer) (socket.Location, error) {
	if flagPath != "" {
		return socket.Location{Path: flagPath, Source: "flag"}, nil
	}
	if cfgPath != "" {
		return socket.Location{Path: cfgPath, Source: "config"}, nil
	}
	return d.Discover(ctx)
}

// withClient connects, runs fn and closes the connection on every path
func withClient[T any](cmd *cobra.Command, fn func(ctx context.Context, c *ipc.Client, s *settings) (T, error)) (T, error) {
	var zero T

	s, err := loadSettings(cmd)
	if err != nil {
		printError(err.Error())
		return zero, err
	}

	c, err := ipc.Connect(cmd.Context(), s.socket.Path, s.opts)
	if err != nil {
		printError(err.Error())
		return zero, err
	}
	defer c.Close()

	result, err := fn(cmd.Context(), c, s)
	if err != nil {
		printIPCError(err)
		return zero, err
	}
	return result, nil
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// printIPCError prints a failure, one line per failed subcommand for command errors
func printIPCError(err error) {
	var cmdErr *ipc.CommandError
	if !errors.As(err, &cmdErr) {
		printError(err.Error())
		return
	}

	printError(fmt.Sprintf("compositor rejected %q", cmdErr.Command))
	for _, f := range cmdErr.Failures {
		msg := f.Error
		if msg == "" {
			msg = "unknown error"
		}
		if f.ParseError {
			msg += " (parse error)"
		}
		fmt.Fprintf(os.Stderr, "  #%d: %s\n", f.Index, msg)
	}
}

// getTreeOptions builds options from flags
func getTreeOptions() output.TreeOptions {
	opts := output.DefaultTreeOptions()

	// Override with flags if set
	if treeASCII {
		opts.UseUnicode = false
	}
	if treeUnicode {
		opts.UseUnicode = true
	}
	if treeNoIDs {
		opts.ShowIDs = false
	}
	if treeNoRects {
		opts.ShowRects = false
	}
	if treeWidth > 0 {
		opts.MaxWidth = treeWidth
	}

	return opts
}
