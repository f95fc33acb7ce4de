// FILE: lixenwraith/options/scan.go
package options

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the parser's effective values (defaults included) into the
// target struct or map, using `flag` struct tags for field mapping. Dotted
// flag names become nested structures. The target must be a non-nil pointer.
//
// Scan is a convenience for callers who want a whole-config struct without
// declaring setters; Materialize and MaterializeInto remain the primary,
// reflection-free path.
func (p *Parser) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	for _, ev := range p.engine.effectiveValues() {
		setNestedValue(nested, ev.Name, ev.Value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "flag",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("failed to scan options into %T: %w", target, err)
	}

	return nil
}
