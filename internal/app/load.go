package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Report summarizes the topic map after a load.
type Report struct {
	Files        int
	Topics       int
	Associations int
	Roles        int
	Names        int
	Occurrences  int
	Variants     int
	Merges       int
	Collapsed    int
	Events       int
}

// Load reads the fixtures under paths into the topic map and reports the
// resulting counts.
func (a *App) Load(ctx context.Context, paths ...string) (Report, error) {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Load method started.", "paths", paths)

	sum, err := a.loader.Load(ctx, a.tm, paths...)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load fixtures: %w", err)
	}

	stats := a.tm.Stats()
	report := Report{
		Files:        sum.Files,
		Topics:       a.tm.Count(construct.KindTopic),
		Associations: a.tm.Count(construct.KindAssociation),
		Roles:        a.tm.Count(construct.KindRole),
		Names:        a.tm.Count(construct.KindName),
		Occurrences:  a.tm.Count(construct.KindOccurrence),
		Variants:     a.tm.Count(construct.KindVariant),
		Merges:       stats.Merges,
		Collapsed:    stats.Collapsed,
		Events:       a.events.Len(),
	}
	a.logger.Info("Fixtures loaded.", "files", report.Files, "topics", report.Topics, "merges", report.Merges)
	return report, nil
}

// WriteReport prints r one count per line.
func (a *App) WriteReport(r Report) error {
	return writeReport(a.outW, r)
}

func writeReport(w io.Writer, r Report) error {
	_, err := fmt.Fprintf(w,
		"files: %d\ntopics: %d\nassociations: %d\nroles: %d\nnames: %d\noccurrences: %d\nvariants: %d\nmerges: %d\ncollapsed: %d\nevents: %d\n",
		r.Files, r.Topics, r.Associations, r.Roles, r.Names, r.Occurrences, r.Variants, r.Merges, r.Collapsed, r.Events)
	return err
}
