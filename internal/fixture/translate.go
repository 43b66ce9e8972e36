package fixture

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
)

// fileLoader feeds the blocks of one file into a target.
type fileLoader struct {
	base construct.Locator
}

func (f *fileLoader) load(ctx context.Context, target Target, root *fileRoot) error {
	for _, t := range root.Topics {
		if err := f.topic(ctx, target, t); err != nil {
			return fmt.Errorf("topic %q: %w", t.Label, err)
		}
	}
	for i, a := range root.Associations {
		if err := f.association(ctx, target, a); err != nil {
			return fmt.Errorf("association %q (#%d): %w", a.Type, i+1, err)
		}
	}
	return nil
}

// ref resolves a topic reference, creating the topic if needed.
func (f *fileLoader) ref(ctx context.Context, target Target, ref string) (construct.ID, error) {
	r, err := parseRef(f.base, ref)
	if err != nil {
		return construct.NoID, err
	}
	return r.resolve(ctx, target)
}

func (f *fileLoader) refs(ctx context.Context, target Target, refs []string) ([]construct.ID, error) {
	out := make([]construct.ID, len(refs))
	for i, r := range refs {
		id, err := f.ref(ctx, target, r)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func (f *fileLoader) optionalRef(ctx context.Context, target Target, ref *string) (construct.ID, error) {
	if ref == nil {
		return construct.NoID, nil
	}
	return f.ref(ctx, target, *ref)
}

func (f *fileLoader) reify(ctx context.Context, target Target, ref construct.Ref, reifier *string) error {
	if reifier == nil {
		return nil
	}
	id, err := f.ref(ctx, target, *reifier)
	if err != nil {
		return fmt.Errorf("reifier: %w", err)
	}
	return target.SetReifier(ctx, ref, id)
}

func (f *fileLoader) topic(ctx context.Context, target Target, t *Topic) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading topic block.", "label", t.Label)

	id, err := f.ref(ctx, target, t.Label)
	if err != nil {
		return err
	}
	identifiers := make([]string, 0, len(t.SubjectIdentifiers)+len(t.SubjectLocators)+len(t.ItemIdentifiers))
	for _, s := range t.SubjectIdentifiers {
		identifiers = append(identifiers, prefixSubjectIdentifier+s)
	}
	for _, s := range t.SubjectLocators {
		identifiers = append(identifiers, prefixSubjectLocator+s)
	}
	for _, s := range t.ItemIdentifiers {
		identifiers = append(identifiers, prefixItemIdentifier+s)
	}
	for _, s := range identifiers {
		r, err := parseRef(f.base, s)
		if err != nil {
			return err
		}
		// A collision merges; carry on with the survivor.
		if id, err = r.attach(ctx, target, id); err != nil {
			return err
		}
	}

	types, err := f.refs(ctx, target, t.Types)
	if err != nil {
		return fmt.Errorf("types: %w", err)
	}
	for _, typ := range types {
		if err := target.AddTopicType(ctx, id, typ); err != nil {
			return err
		}
	}
	supers, err := f.refs(ctx, target, t.Supertypes)
	if err != nil {
		return fmt.Errorf("supertypes: %w", err)
	}
	for _, super := range supers {
		if err := target.AddSupertype(ctx, id, super); err != nil {
			return err
		}
	}

	for i, n := range t.Names {
		if err := f.name(ctx, target, id, n); err != nil {
			return fmt.Errorf("name #%d: %w", i+1, err)
		}
	}
	for i, o := range t.Occurrences {
		if err := f.occurrence(ctx, target, id, o); err != nil {
			return fmt.Errorf("occurrence #%d: %w", i+1, err)
		}
	}
	return nil
}

func (f *fileLoader) name(ctx context.Context, target Target, topic construct.ID, n *Name) error {
	typ, err := f.optionalRef(ctx, target, n.Type)
	if err != nil {
		return err
	}
	themes, err := f.refs(ctx, target, n.Scope)
	if err != nil {
		return err
	}
	name, err := target.CreateName(ctx, topic, typ, n.Value, themes...)
	if err != nil {
		return err
	}
	if err := f.reify(ctx, target, construct.NameRef(name), n.Reifier); err != nil {
		return err
	}
	for i, v := range n.Variants {
		if err := f.variant(ctx, target, name, v); err != nil {
			return fmt.Errorf("variant #%d: %w", i+1, err)
		}
	}
	return nil
}

func (f *fileLoader) variant(ctx context.Context, target Target, name construct.ID, v *Variant) error {
	value, datatype, err := literal(v.Value, v.Datatype)
	if err != nil {
		return err
	}
	themes, err := f.refs(ctx, target, v.Scope)
	if err != nil {
		return err
	}
	variant, err := target.CreateVariant(ctx, name, value, datatype, themes...)
	if err != nil {
		return err
	}
	return f.reify(ctx, target, construct.VariantRef(variant), v.Reifier)
}

func (f *fileLoader) occurrence(ctx context.Context, target Target, topic construct.ID, o *Occurrence) error {
	typ, err := f.ref(ctx, target, o.Type)
	if err != nil {
		return err
	}
	value, datatype, err := literal(o.Value, o.Datatype)
	if err != nil {
		return err
	}
	themes, err := f.refs(ctx, target, o.Scope)
	if err != nil {
		return err
	}
	occ, err := target.CreateOccurrence(ctx, topic, typ, value, datatype, themes...)
	if err != nil {
		return err
	}
	return f.reify(ctx, target, construct.OccurrenceRef(occ), o.Reifier)
}

func (f *fileLoader) association(ctx context.Context, target Target, a *Association) error {
	typ, err := f.ref(ctx, target, a.Type)
	if err != nil {
		return err
	}
	themes, err := f.refs(ctx, target, a.Scope)
	if err != nil {
		return err
	}
	roles := make([]topicmap.RoleSpec, len(a.Roles))
	for i, r := range a.Roles {
		roleType, err := f.ref(ctx, target, r.Type)
		if err != nil {
			return fmt.Errorf("role %q: %w", r.Type, err)
		}
		player, err := f.ref(ctx, target, r.Player)
		if err != nil {
			return fmt.Errorf("role %q: %w", r.Type, err)
		}
		roles[i] = topicmap.RoleSpec{Type: roleType, Player: player}
	}
	assoc, err := target.CreateAssociation(ctx, typ, themes, roles...)
	if err != nil {
		return err
	}
	return f.reify(ctx, target, construct.AssociationRef(assoc), a.Reifier)
}
