package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// ErrNotFound is returned by Resolve when no construct carries the locator.
var ErrNotFound = errors.New("no construct found")

// Description is the printable state of one construct.
type Description struct {
	Ref                construct.Ref
	ItemIdentifiers    []construct.Locator
	SubjectIdentifiers []construct.Locator
	SubjectLocators    []construct.Locator
	Types              []construct.ID
	Names              []string
	Type               construct.ID
	Value              string
	Datatype           construct.Locator
	Scope              []construct.ID
	Parent             construct.ID
	Player             construct.ID
	Reifier            construct.ID
}

// Resolve finds the construct addressed by raw. An absolute IRI is looked up
// as is; anything else is treated as a label relative to the base locator.
func (a *App) Resolve(ctx context.Context, raw string) (Description, error) {
	a.logger.Debug("App.Resolve method started.", "locator", raw)

	loc, err := construct.ParseLocator(raw)
	if err != nil {
		if loc, err = a.base.Resolve("#" + raw); err != nil {
			return Description{}, fmt.Errorf("invalid locator %q: %w", raw, err)
		}
	}

	ref, ok := a.tm.Resolve(loc)
	if !ok {
		return Description{}, fmt.Errorf("%w: %s", ErrNotFound, loc)
	}
	return a.describe(ref), nil
}

func (a *App) describe(ref construct.Ref) Description {
	tm := a.tm
	d := Description{
		Ref:             ref,
		ItemIdentifiers: tm.ItemIdentifiers(ref.ID),
	}
	d.Reifier, _ = tm.Reifier(ref.ID)

	switch ref.Kind {
	case construct.KindTopic:
		d.SubjectIdentifiers = tm.SubjectIdentifiers(ref.ID)
		d.SubjectLocators = tm.SubjectLocators(ref.ID)
		d.Types = tm.TopicTypes(ref.ID)
		for _, name := range tm.Names(ref.ID) {
			if v, ok := tm.Value(name); ok {
				d.Names = append(d.Names, v)
			}
		}
	case construct.KindRole:
		d.Player, _ = tm.Player(ref.ID)
	}
	if ref.Kind.IsTyped() {
		d.Type, _ = tm.Type(ref.ID)
	}
	if ref.Kind.IsScoped() {
		d.Scope = tm.Scope(ref.ID)
	}
	if ref.Kind.IsValued() {
		d.Value, _ = tm.Value(ref.ID)
	}
	if ref.Kind.HasDatatype() {
		d.Datatype = tm.Datatype(ref.ID)
	}
	switch ref.Kind {
	case construct.KindName, construct.KindOccurrence, construct.KindVariant, construct.KindRole:
		d.Parent, _ = tm.Parent(ref.ID)
	}
	return d
}

// WriteDescription prints d one attribute per line, skipping empty ones.
func (a *App) WriteDescription(d Description) error {
	return writeDescription(a.outW, d)
}

func writeDescription(w io.Writer, d Description) error {
	var b strings.Builder
	fmt.Fprintf(&b, "construct: %s\n", d.Ref)
	locators := func(label string, locs []construct.Locator) {
		for _, l := range locs {
			fmt.Fprintf(&b, "%s: %s\n", label, l)
		}
	}
	handle := func(label string, id construct.ID) {
		if id != construct.NoID {
			fmt.Fprintf(&b, "%s: %s\n", label, id)
		}
	}
	locators("item_identifier", d.ItemIdentifiers)
	locators("subject_identifier", d.SubjectIdentifiers)
	locators("subject_locator", d.SubjectLocators)
	for _, t := range d.Types {
		fmt.Fprintf(&b, "type: %s\n", t)
	}
	for _, n := range d.Names {
		fmt.Fprintf(&b, "name: %s\n", n)
	}
	handle("type", d.Type)
	handle("parent", d.Parent)
	handle("player", d.Player)
	if d.Ref.Kind.IsValued() {
		fmt.Fprintf(&b, "value: %s\n", d.Value)
	}
	if d.Datatype != "" {
		fmt.Fprintf(&b, "datatype: %s\n", d.Datatype)
	}
	for _, theme := range d.Scope {
		fmt.Fprintf(&b, "theme: %s\n", theme)
	}
	handle("reifier", d.Reifier)
	_, err := io.WriteString(w, b.String())
	return err
}
