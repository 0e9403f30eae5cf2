package i18n

import "errors"

var (
	ErrNilAdapter        = errors.New("i18n: adapter is nil")
	ErrNoTranslations    = errors.New("i18n: no translations loaded")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")
	ErrFailedToReadFile  = errors.New("i18n: failed to read translation file")
	ErrInvalidStructure  = errors.New("i18n: invalid translation structure")
	ErrLoadingCancelled  = errors.New("i18n: loading translations cancelled")
)
