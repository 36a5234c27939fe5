package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sarchart/sarchart/internal/config"
	"github.com/sarchart/sarchart/internal/doctor"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/source"
	"github.com/sarchart/sarchart/internal/ui"
	"github.com/sarchart/sarchart/pkg/sshutil"
	"github.com/spf13/cobra"
)

// DoctorOutput is the JSON form of a doctor run.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput holds the results of one category.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput counts the results by status.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func newDoctorCmd(chartOpts *chartFlags, deps chartDeps) *cobra.Command {
	var host string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that sar, sysstat data and the terminal are ready",
		Long: `Run diagnostics for the local machine, or for an SSH host with --host:
the config file, the sar binary, the sysstat day files used by --ago and
the terminal size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doctorCommand(cmd.Context(), chartOpts.configPath, host, asJSON, cmd.OutOrStdout(), deps)
		},
	}

	cmd.Flags().StringVar(&host, config.FlagHost, "", "check this SSH host instead of the local machine")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	_ = cmd.RegisterFlagCompletionFunc(config.FlagHost, completeHosts)
	return cmd
}

func doctorCommand(ctx context.Context, configPath, host string, asJSON bool, out io.Writer, deps chartDeps) error {
	// a broken config is reported by the config check, so fall back to defaults here
	saDir := config.DefaultSaDir
	if f, _, err := config.LoadOrDefault(configPath); err == nil {
		saDir = f.Defaults.SaDir
		if host == "" {
			host = f.Defaults.Host
		}
	}

	checks, conn := doctor.NewChecks(doctor.Options{
		ConfigPath: configPath,
		Host:       host,
		SaDir:      saDir,
		Dial:       deps.dial,
		Size:       deps.termSize,
	})
	if conn != nil {
		defer conn.Close()
	}

	results := doctor.RunAll(ctx, checks)

	var err error
	if asJSON {
		err = writeDoctorJSON(out, results)
	} else {
		writeDoctorText(out, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrDoctor, doctor.Summary(results),
			"Fix the failed checks above and run 'sarchart doctor' again.")
	}
	return nil
}

// dialSSH adapts sshutil.Dial to doctor.Dialer.
func dialSSH(ctx context.Context, host string) (sshutil.SSHClient, error) {
	client, err := sshutil.Dial(ctx, host, source.DialTimeout)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func groupByCategory(results []doctor.CheckResult) []CategoryOutput {
	var groups []CategoryOutput
	for _, cat := range doctor.Categories {
		var in []doctor.CheckResult
		for _, r := range results {
			if r.Category == cat {
				in = append(in, r)
			}
		}
		if len(in) > 0 {
			groups = append(groups, CategoryOutput{Name: cat, Results: in})
		}
	}
	return groups
}

func writeDoctorJSON(out io.Writer, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Categories: groupByCategory(results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return errors.WrapWithCode(err, errors.ErrDoctor, "Failed to write the report", "")
	}
	return nil
}

func writeDoctorText(out io.Writer, results []doctor.CheckResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.TitleStyle.Render("sarchart diagnostic report"))
	fmt.Fprintln(out)

	for _, group := range groupByCategory(results) {
		fmt.Fprintln(out, ui.TitleStyle.Render(group.Name))
		for _, r := range group.Results {
			writeCheckResult(out, r)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	if doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", ui.ErrorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
}

func writeCheckResult(out io.Writer, r doctor.CheckResult) {
	symbol, style := ui.SymbolSuccess, ui.SuccessStyle
	switch r.Status {
	case doctor.StatusWarn:
		style = ui.WarningStyle
	case doctor.StatusFail:
		symbol, style = ui.SymbolFail, ui.ErrorStyle
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), r.Message)
	if r.Suggestion != "" && r.Status != doctor.StatusPass {
		for _, line := range strings.Split(r.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", ui.MutedStyle.Render(line))
		}
	}
}
