package i18n

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"path"
	"strings"
)

// Adapter loads translations keyed by language.
type Adapter interface {
	Load(ctx context.Context) (map[string]Messages, error)
}

// MapAdapter serves translations held in memory.
type MapAdapter map[string]Messages

func (a MapAdapter) Load(context.Context) (map[string]Messages, error) {
	out := make(map[string]Messages, len(a))
	for lang, msgs := range a {
		out[lang] = maps.Clone(msgs)
	}
	return out, nil
}

// FSAdapter loads every .yaml/.yml file under Dir in FS. It works with
// embed.FS as well as os.DirFS. Files for the same language are merged;
// later files in lexical order win on key clashes.
type FSAdapter struct {
	FS  fs.FS
	Dir string
}

func (a FSAdapter) Load(ctx context.Context) (map[string]Messages, error) {
	dir := a.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(a.FS, dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	out := make(map[string]Messages)
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		raw, err := fs.ReadFile(a.FS, path.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := ParseYAML(ctx, raw)
		if err != nil {
			return nil, err
		}
		for lang, msgs := range parsed {
			if out[lang] == nil {
				out[lang] = make(Messages, len(msgs))
			}
			maps.Copy(out[lang], msgs)
		}
	}
	return out, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
