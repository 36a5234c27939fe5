package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sarchart/sarchart/internal/config"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/ui"
	"github.com/spf13/cobra"
)

func newPresetsCmd(chartOpts *chartFlags, deps chartDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List, pick and add chart presets",
		Long: `Presets are named sets of sar arguments and chart options kept in the
config file. Use one with --preset NAME; flags given on the command line
still win over the preset's values.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the presets in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(chartOpts.configPath, cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively and chart it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.IsTerminal(os.Stdin) {
				return errors.New(errors.ErrConfig, "presets pick needs an interactive terminal",
					"Use 'sarchart --preset NAME' instead.")
			}
			f, _, err := config.LoadOrDefault(chartOpts.configPath)
			if err != nil {
				return err
			}
			picked, err := ui.PickPreset(presetInfos(f))
			if err != nil || picked == nil {
				return err
			}
			run := &chartFlags{configPath: chartOpts.configPath, preset: picked.Name}
			return runChart(cmd.Context(), run, nil, nil, cmd.OutOrStdout(), cmd.ErrOrStderr(), deps)
		},
	})

	cmd.AddCommand(newPresetsAddCmd(chartOpts))
	return cmd
}

func presetInfos(f *config.File) []ui.PresetInfo {
	names := f.PresetNames()
	infos := make([]ui.PresetInfo, 0, len(names))
	for _, name := range names {
		p := f.Presets[name]
		infos = append(infos, ui.PresetInfo{Name: name, Description: p.Description, SarArgs: p.SarArgs})
	}
	return infos
}

func listPresets(configPath string, out io.Writer) error {
	f, path, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(out, ui.MutedStyle.Render("Config: "+path))
	}
	fmt.Fprintln(out, ui.RenderPresetTable(presetInfos(f)))
	return nil
}

// PresetAddOptions describe a preset to write.
type PresetAddOptions struct {
	ConfigPath     string
	Name           string
	Preset         config.Preset
	Force          bool
	NonInteractive bool
}

func newPresetsAddCmd(chartOpts *chartFlags) *cobra.Command {
	var opts PresetAddOptions

	cmd := &cobra.Command{
		Use:   "add NAME [-- sar arguments]",
		Short: "Save a preset to the config file",
		Long: `Save a named preset. Without sar arguments and on a terminal, a short
form asks for them.

Examples:
  sarchart presets add net --iface eth0 --include rxkB/s,txkB/s -- -n DEV
  sarchart presets add mem --title Memory -- -r`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dash := cmd.ArgsLenAtDash(); dash > 1 || (dash == -1 && len(args) > 1) {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Unexpected argument %q", args[1]),
					"sar arguments go after --, for example: sarchart presets add net -- -n DEV")
			}
			opts.Name = args[0]
			opts.Preset.SarArgs = args[1:]
			opts.ConfigPath = chartOpts.configPath
			if !ui.IsTerminal(os.Stdin) {
				opts.NonInteractive = true
			}
			return AddPresetCommand(opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Preset.Description, "description", "", "one-line description shown by presets list")
	flags.StringVar(&opts.Preset.Title, config.FlagTitle, "", "chart title")
	flags.StringVar(&opts.Preset.YLabel, config.FlagYLabel, "", "label above the y axis")
	flags.Float64Var(&opts.Preset.YMax, config.FlagYMax, 0, "fixed top of the y axis")
	flags.IntVar(&opts.Preset.Height, config.FlagHeight, 0, "chart height in rows")
	flags.IntVar(&opts.Preset.Width, config.FlagWidth, 0, "chart width in columns")
	flags.StringVar(&opts.Preset.Dev, config.FlagDev, "", "only rows for this DEV")
	flags.StringVar(&opts.Preset.Iface, config.FlagIface, "", "only rows for this IFACE")
	flags.StringVar(&opts.Preset.CPU, config.FlagCPU, "", "only rows for this CPU")
	flags.StringSliceVar(&opts.Preset.Include, config.FlagInclude, nil, "columns to chart")
	flags.StringSliceVar(&opts.Preset.Exclude, config.FlagExclude, nil, "columns to leave out")
	flags.StringArrayVar(&opts.Preset.Derive, config.FlagDerive, nil, "extra series as name=expression")
	flags.IntVar(&opts.Preset.Refresh, config.FlagRefresh, 0, "refresh interval in seconds")
	flags.BoolVar(&opts.Preset.NoLegend, config.FlagNoLegend, false, "never draw the legend")
	flags.BoolVar(&opts.Preset.Panel, config.FlagPanel, false, "draw in a full-screen panel")
	flags.BoolVar(&opts.Preset.Summary, config.FlagSummary, false, "print the summary table")
	flags.BoolVarP(&opts.Force, "force", "f", false, "replace an existing preset")
	return cmd
}

// AddPresetCommand writes opts.Preset, asking for missing sar arguments
// on a terminal.
func AddPresetCommand(opts PresetAddOptions, out io.Writer) error {
	if len(opts.Preset.SarArgs) == 0 {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Preset '%s' needs sar arguments", opts.Name),
				"Pass them after --, for example: sarchart presets add net -- -n DEV")
		}
		if err := promptPreset(&opts.Preset); err != nil {
			return err
		}
	}

	path, err := presetTarget(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.AddPreset(path, opts.Name, opts.Preset, opts.Force); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Saved preset '%s' to %s\n",
		ui.SuccessStyle.Render(ui.SymbolSuccess), config.PresetKey(opts.Name), path)
	return nil
}

// presetTarget is the file new presets go to: the explicit or discovered
// config, else the global one.
func presetTarget(explicit string) (string, error) {
	if explicit != "" {
		return config.ExpandTilde(explicit), nil
	}
	path, err := config.Find("")
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	if path = config.GlobalPath(); path == "" {
		return "", errors.New(errors.ErrConfig, "No home directory for the global config",
			"Pass --config PATH to choose where the preset goes.")
	}
	return path, nil
}

func promptPreset(p *config.Preset) error {
	var sarArgs string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("sar arguments").
				Description("Everything that would follow 'sar', e.g. -n DEV").
				Placeholder("-u").
				Value(&sarArgs).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("at least one sar argument is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(&p.Description),
			huh.NewInput().
				Title("Chart title (optional)").
				Value(&p.Title),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Pass the sar arguments after -- instead.")
	}
	p.SarArgs = strings.Fields(sarArgs)
	return nil
}
