package i18n

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Messages maps dot-separated keys to message templates for one language.
type Messages map[string]string

// ParseYAML reads a document whose top-level keys are language codes and
// whose values are nested maps of messages:
//
//	en:
//	  booking:
//	    errors:
//	      name_too_short: "Name must be at least 2 characters long"
//
// Nested keys are flattened with dots ("booking.errors.name_too_short").
func ParseYAML(ctx context.Context, content []byte) (map[string]Messages, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	out := make(map[string]Messages, len(doc))
	for lang, v := range doc {
		tree, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q is %T, want map", ErrInvalidStructure, lang, v)
		}
		msgs := make(Messages)
		if err := flatten("", tree, msgs); err != nil {
			return nil, fmt.Errorf("%w: language %q: %w", ErrInvalidStructure, lang, err)
		}
		out[lang] = msgs
	}
	return out, nil
}

func flatten(prefix string, tree map[string]any, into Messages) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			into[key] = val
		case map[string]any:
			if err := flatten(key, val, into); err != nil {
				return err
			}
		case int, int64, float64, bool:
			into[key] = fmt.Sprint(val)
		default:
			return fmt.Errorf("key %q has unsupported type %T", key, v)
		}
	}
	return nil
}
