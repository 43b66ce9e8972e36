package fixture

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// literal evaluates a constant value expression into its lexical form and
// datatype. An explicit datatype wins over the one implied by the value.
func literal(expr hcl.Expression, datatype *string) (string, construct.Locator, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", "", fmt.Errorf("invalid value: %w", diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", "", fmt.Errorf("value must be a known, non-null literal")
	}

	implied, err := impliedDatatype(val)
	if err != nil {
		return "", "", err
	}
	lexical, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", "", fmt.Errorf("value of type %s has no lexical form: %w", val.Type().FriendlyName(), err)
	}

	if datatype == nil {
		return lexical.AsString(), implied, nil
	}
	dt, err := construct.ParseLocator(*datatype)
	if err != nil {
		return "", "", fmt.Errorf("invalid datatype: %w", err)
	}
	return lexical.AsString(), dt, nil
}

func impliedDatatype(val cty.Value) (construct.Locator, error) {
	switch val.Type() {
	case cty.String:
		return construct.DatatypeString, nil
	case cty.Bool:
		return construct.DatatypeBoolean, nil
	case cty.Number:
		if val.AsBigFloat().IsInt() {
			return construct.DatatypeInteger, nil
		}
		return construct.DatatypeDecimal, nil
	}
	return "", fmt.Errorf("unsupported value type %s", val.Type().FriendlyName())
}
