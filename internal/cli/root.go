package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sarchart/sarchart/internal/config"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/util"
	"github.com/sarchart/sarchart/pkg/sshutil"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. The root command draws the chart;
// subcommands manage presets, run diagnostics and print version information.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(deps chartDeps) *cobra.Command {
	opts := &chartFlags{}

	root := &cobra.Command{
		Use:   "sarchart [flags] [-- sar arguments]",
		Short: "Chart sar output in the terminal",
		Long: `Run sar locally or over SSH and draw its columns as a braille line chart.

Arguments after -- are passed to sar unchanged and pick the report:
  -u CPU utilization, -r memory, -n DEV network interfaces, -d block devices.

Examples:
  sarchart -- -u
  sarchart --iface eth0 --include rxkB/s,txkB/s -- -n DEV
  sarchart --ago 1 --start 08:00 --end 18:00 -- -r
  sarchart --host db1 --refresh 5 --panel -- -q
  sarchart --preset net --export ~/sar/${HOST}-${DATE}.xlsx`,
		Args:          sarArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := args
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				extra = args[dash:]
			}
			return runChart(cmd.Context(), opts, extra, cmd.Flags().Changed, cmd.OutOrStdout(), cmd.ErrOrStderr(), deps)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: .sarchart.yaml up the tree, then ~/.config/sarchart/config.yaml)")
	addChartFlags(root, opts)
	registerCompletions(root, opts)

	root.AddCommand(newPresetsCmd(opts, deps))
	root.AddCommand(newDoctorCmd(opts, deps))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCompletionCmd())
	return root
}

// sarArgs only accepts positional arguments after --, so a mistyped
// subcommand is reported instead of being handed to sar.
func sarArgs(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	if dash == 0 || len(args) == 0 {
		return nil
	}
	return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	stop()
	sshutil.CloseAgent()

	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(root, err))
		os.Exit(1)
	}
}

// describeError turns cobra's plain usage errors into structured ones.
func describeError(root *cobra.Command, err error) error {
	if !isUnknownCommandError(err) {
		return err
	}

	suggestion := "sar arguments go after --, for example: sarchart -- -n DEV"
	if name := extractUnknownCommand(err); name != "" {
		var commands []string
		for _, c := range root.Commands() {
			commands = append(commands, c.Name())
		}
		if similar := util.SuggestSimilar(name, commands, 1); len(similar) > 0 {
			suggestion = fmt.Sprintf("Did you mean 'sarchart %s'? Otherwise, %s", similar[0], suggestion)
		}
	}
	return errors.New(errors.ErrConfig, err.Error(), suggestion)
}

func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the name out of `unknown command "foo" for "sarchart"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func registerCompletions(root *cobra.Command, opts *chartFlags) {
	_ = root.RegisterFlagCompletionFunc(config.FlagHost, completeHosts)

	_ = root.RegisterFlagCompletionFunc(flagPreset, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		f, _, err := config.LoadOrDefault(opts.configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, name := range f.PresetNames() {
			if strings.HasPrefix(name, strings.ToLower(toComplete)) {
				out = append(out, name+"\t"+f.Presets[name].Description)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	_ = root.RegisterFlagCompletionFunc(config.FlagColor, cobra.FixedCompletions(config.ValidColorModes, cobra.ShellCompDirectiveNoFileComp))
}

// completeHosts offers the Host aliases from ~/.ssh/config.
func completeHosts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	hosts, err := sshutil.ParseSSHConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sshutil.CompleteHosts(hosts, toComplete), cobra.ShellCompDirectiveNoFileComp
}
