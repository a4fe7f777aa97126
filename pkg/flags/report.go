package flags

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/openshift-eng/report-summary/pkg/flags/configflags"
	"github.com/openshift-eng/report-summary/pkg/summary"
)

const (
	workingDirectoryFlag = "working-directory"
	reportDirectoryFlag  = "report-directory"
	sectionLimitFlag     = "section-limit"

	// DefaultReportDirectory is used, relative to the working directory, when neither the
	// report-directory input nor the report config names an output directory.
	DefaultReportDirectory = "allure-report"
)

// ReportFlags locate the generated reports.
type ReportFlags struct {
	ConfigFlags *configflags.ConfigFlags

	WorkingDirectory string
	ReportDirectory  string
	SectionLimit     int
}

func NewReportFlags() *ReportFlags {
	return &ReportFlags{
		ConfigFlags:  configflags.NewConfigFlags(),
		SectionLimit: summary.DefaultSectionLimit,
	}
}

func (f *ReportFlags) BindFlags(fs *pflag.FlagSet) {
	f.ConfigFlags.BindFlags(fs)
	fs.StringVar(&f.WorkingDirectory, workingDirectoryFlag, f.WorkingDirectory, "Directory holding the report configuration, defaults to the current directory")
	fs.StringVar(&f.ReportDirectory, reportDirectoryFlag, f.ReportDirectory, "Directory searched for summary.json files, overrides the configured report output")
	fs.IntVar(&f.SectionLimit, sectionLimitFlag, f.SectionLimit, "Maximum number of tests listed in a single comment section")
}

// InputNames lists the flags that may also be provided as action inputs.
func (f *ReportFlags) InputNames() []string {
	return []string{workingDirectoryFlag, reportDirectoryFlag, sectionLimitFlag}
}

// Load overrides unset flags with the matching action inputs.
func (f *ReportFlags) Load(in *Inputs) {
	f.WorkingDirectory = in.GetString(workingDirectoryFlag)
	f.ReportDirectory = in.GetString(reportDirectoryFlag)
	f.SectionLimit = in.GetInt(sectionLimitFlag)
}

func (f *ReportFlags) GetWorkingDirectory() (string, error) {
	if f.WorkingDirectory != "" {
		return f.WorkingDirectory, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.WithMessage(err, "could not determine working directory")
	}
	return wd, nil
}

// GetReportDirectory returns, in order of preference, the report-directory flag, the output
// of the report config, or the default report directory. Relative paths are resolved against
// the working directory.
func (f *ReportFlags) GetReportDirectory() (string, error) {
	wd, err := f.GetWorkingDirectory()
	if err != nil {
		return "", err
	}

	if f.ReportDirectory != "" {
		return resolvePath(wd, f.ReportDirectory), nil
	}

	cfg, err := f.ConfigFlags.GetConfig(wd)
	if err != nil {
		return "", err
	}
	if cfg.Output != "" {
		log.Debugf("using report output %s from %s", cfg.Output, cfg.Path)
		return resolvePath(wd, cfg.Output), nil
	}

	return filepath.Join(wd, DefaultReportDirectory), nil
}

func resolvePath(wd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(wd, path)
}
