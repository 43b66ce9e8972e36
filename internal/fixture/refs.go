package fixture

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

const (
	prefixSubjectIdentifier = "si:"
	prefixSubjectLocator    = "sl:"
	prefixItemIdentifier    = "ii:"
)

// topicRef is a parsed topic reference.
type topicRef struct {
	prefix string
	loc    construct.Locator
}

// parseRef parses a topic reference relative to base.
func parseRef(base construct.Locator, ref string) (topicRef, error) {
	for _, prefix := range []string{prefixSubjectIdentifier, prefixSubjectLocator, prefixItemIdentifier} {
		if rest, ok := strings.CutPrefix(ref, prefix); ok {
			loc, err := construct.ParseLocator(rest)
			if err != nil {
				return topicRef{}, fmt.Errorf("topic reference %q: %w", ref, err)
			}
			return topicRef{prefix: prefix, loc: loc}, nil
		}
	}
	if ref == "" || strings.ContainsAny(ref, "#/ \t") {
		return topicRef{}, fmt.Errorf("%w: invalid topic label %q", construct.ErrInvalidLocator, ref)
	}
	loc, err := construct.ParseLocator(string(base) + "#" + ref)
	if err != nil {
		return topicRef{}, fmt.Errorf("topic label %q: %w", ref, err)
	}
	return topicRef{prefix: prefixItemIdentifier, loc: loc}, nil
}

// resolve returns the topic addressed by ref, creating it if needed.
func (r topicRef) resolve(ctx context.Context, target Target) (construct.ID, error) {
	switch r.prefix {
	case prefixSubjectIdentifier:
		return target.CreateTopicBySubjectIdentifier(ctx, r.loc)
	case prefixSubjectLocator:
		return target.CreateTopicBySubjectLocator(ctx, r.loc)
	}
	return target.CreateTopicByItemIdentifier(ctx, r.loc)
}

// attach gives topic the identifier of ref and returns the topic holding it
// afterwards.
func (r topicRef) attach(ctx context.Context, target Target, topic construct.ID) (construct.ID, error) {
	switch r.prefix {
	case prefixSubjectIdentifier:
		return target.AddSubjectIdentifier(ctx, topic, r.loc)
	case prefixSubjectLocator:
		return target.AddSubjectLocator(ctx, topic, r.loc)
	}
	return target.AddItemIdentifier(ctx, construct.TopicRef(topic), r.loc)
}
