package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/openshift-eng/report-summary/pkg/action"
	"github.com/openshift-eng/report-summary/pkg/flags"
	"github.com/openshift-eng/report-summary/pkg/reportloader"
)

type RenderFlags struct {
	ReportFlags *flags.ReportFlags
	Output      string
}

func NewRenderFlags() *RenderFlags {
	return &RenderFlags{
		ReportFlags: flags.NewReportFlags(),
		Output:      "markdown",
	}
}

func (f *RenderFlags) BindFlags(fs *pflag.FlagSet) {
	f.ReportFlags.BindFlags(fs)
	fs.StringVarP(&f.Output, "output", "o", f.Output, "Output format; available options are 'markdown', 'yaml' and 'json'")
}

func NewRenderCommand() *cobra.Command {
	f := NewRenderFlags()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the report summary to stdout",
		Long: `Render the comments publish would post for the report directory, without talking to
GitHub. The yaml and json outputs include the aggregated totals of all runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.NewInputs(cmd.Flags(), f.ReportFlags.InputNames()...)
			if err != nil {
				return err
			}
			f.ReportFlags.Load(in)

			reportDir, err := f.ReportFlags.GetReportDirectory()
			if err != nil {
				return err
			}
			reports, err := reportloader.Load(context.Background(), reportDir)
			if err != nil {
				return err
			}
			rendered := action.Render(reports, f.ReportFlags.SectionLimit)

			switch f.Output {
			case "markdown":
				fmt.Fprintln(os.Stdout, rendered.Markdown())
			case "yaml":
				y, err := yaml.Marshal(rendered)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(y))
			case "json":
				y, err := json.MarshalIndent(rendered, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(y))
			default:
				return errors.Errorf("invalid output format: %s", f.Output)
			}

			return nil
		},
	}

	f.BindFlags(cmd.Flags())

	return cmd
}
