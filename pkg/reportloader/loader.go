package reportloader

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

const (
	SummaryFileName     = "summary.json"
	QualityGateFileName = "quality-gate.json"

	// maxConcurrentReads bounds the number of summary files open at once.
	maxConcurrentReads = 16
)

// Reports is everything published from a report directory.
type Reports struct {
	// Summaries are in discovery order, see FindSummaryFiles.
	Summaries []v1.RunSummary
	// QualityGate is nil when the report directory holds no usable quality-gate.json.
	QualityGate *v1.QualityGateResults
}

// Load discovers and reads every summary.json below reportDir along with the optional
// quality-gate.json at its root. A missing report directory yields no summaries.
func Load(ctx context.Context, reportDir string) (*Reports, error) {
	logger := log.WithField("reportDir", reportDir)

	paths, err := FindSummaryFiles(reportDir)
	if err != nil {
		return nil, err
	}
	logger.Debugf("found %d summary files", len(paths))

	summaries, err := ReadSummaries(ctx, paths)
	if err != nil {
		return nil, err
	}

	return &Reports{
		Summaries:   summaries,
		QualityGate: ReadQualityGate(reportDir),
	}, nil
}

// FindSummaryFiles returns the summary.json files below reportDir in lexical path order.
func FindSummaryFiles(reportDir string) ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(reportDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == reportDir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if !d.IsDir() && d.Name() == SummaryFileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error searching %s for %s files", reportDir, SummaryFileName)
	}
	return paths, nil
}

// ReadSummaries reads the given files concurrently. The result keeps the order of paths no
// matter which read finishes first; any unreadable or malformed file fails the whole call.
func ReadSummaries(ctx context.Context, paths []string) ([]v1.RunSummary, error) {
	results := make([]v1.RunSummary, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			summary, err := readSummary(path)
			if err != nil {
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func readSummary(path string) (v1.RunSummary, error) {
	var summary v1.RunSummary

	data, err := os.ReadFile(path)
	if err != nil {
		return summary, errors.Wrapf(err, "error reading %s", path)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, errors.Wrapf(err, "error parsing %s", path)
	}
	return summary, nil
}

// ReadQualityGate returns the quality gate results stored in reportDir. A missing file and a
// malformed one both read as no quality gate data; the latter is logged.
func ReadQualityGate(reportDir string) *v1.QualityGateResults {
	path := filepath.Join(reportDir, QualityGateFileName)
	logger := log.WithField("file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WithError(err).Warn("could not read quality gate results, ignoring")
		}
		return nil
	}

	results := &v1.QualityGateResults{}
	if err := json.Unmarshal(data, results); err != nil {
		logger.WithError(err).Warn("could not parse quality gate results, ignoring")
		return nil
	}
	return results
}
