package fixture

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/fsutil"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
)

// Extension is the file extension of fixture files.
const Extension = ".hcl"

// Target is the topic map a fixture is loaded into. *topicmap.TopicMap
// implements it.
type Target interface {
	CreateTopicBySubjectIdentifier(ctx context.Context, loc construct.Locator) (construct.ID, error)
	CreateTopicBySubjectLocator(ctx context.Context, loc construct.Locator) (construct.ID, error)
	CreateTopicByItemIdentifier(ctx context.Context, loc construct.Locator) (construct.ID, error)
	AddSubjectIdentifier(ctx context.Context, topic construct.ID, loc construct.Locator) (construct.ID, error)
	AddSubjectLocator(ctx context.Context, topic construct.ID, loc construct.Locator) (construct.ID, error)
	AddItemIdentifier(ctx context.Context, ref construct.Ref, loc construct.Locator) (construct.ID, error)
	AddTopicType(ctx context.Context, topic, typ construct.ID) error
	AddSupertype(ctx context.Context, sub, super construct.ID) error
	CreateName(ctx context.Context, topic, typ construct.ID, value string, themes ...construct.ID) (construct.ID, error)
	CreateOccurrence(ctx context.Context, topic, typ construct.ID, value string, datatype construct.Locator, themes ...construct.ID) (construct.ID, error)
	CreateVariant(ctx context.Context, name construct.ID, value string, datatype construct.Locator, themes ...construct.ID) (construct.ID, error)
	CreateAssociation(ctx context.Context, typ construct.ID, themes []construct.ID, roles ...topicmap.RoleSpec) (construct.ID, error)
	SetReifier(ctx context.Context, ref construct.Ref, reifier construct.ID) error
}

// Summary counts what a Load call read.
type Summary struct {
	Files        int
	Topics       int
	Associations int
}

// Loader reads fixture files into a Target.
type Loader struct {
	base construct.Locator
}

// NewLoader creates a loader resolving bare labels against base. A file's
// own base attribute overrides it for that file.
func NewLoader(base construct.Locator) *Loader {
	return &Loader{base: base}
}

// Load reads every fixture file found under paths into target, in order.
// It stops at the first error; blocks loaded before it stay in target.
func (l *Loader) Load(ctx context.Context, target Target, paths ...string) (Summary, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Fixture loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(Extension, paths...)
	if err != nil {
		return Summary{}, err
	}
	logger.Debug("Discovered fixture files.", "count", len(files))

	var sum Summary
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return sum, fmt.Errorf("failed to parse fixture file %s: %w", file, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return sum, fmt.Errorf("failed to decode fixture file %s: %w", file, diags)
		}

		fileCtx, _ := ctxlog.With(ctx, "file", file)
		fl, err := l.forFile(root.Base)
		if err != nil {
			return sum, fmt.Errorf("fixture file %s: %w", file, err)
		}
		if err := fl.load(fileCtx, target, &root); err != nil {
			return sum, fmt.Errorf("fixture file %s: %w", file, err)
		}
		sum.Files++
		sum.Topics += len(root.Topics)
		sum.Associations += len(root.Associations)
	}

	logger.Debug("Fixture loading complete.", "files", sum.Files, "topics", sum.Topics, "associations", sum.Associations)
	return sum, nil
}

func (l *Loader) forFile(base *string) (*fileLoader, error) {
	if base == nil {
		return &fileLoader{base: l.base}, nil
	}
	loc, err := construct.ParseLocator(*base)
	if err != nil {
		return nil, fmt.Errorf("invalid base: %w", err)
	}
	return &fileLoader{base: loc}, nil
}
