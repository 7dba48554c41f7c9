package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Reply catalogue keys.
const (
	KeyWelcome          = "welcome"
	KeyStartFailed      = "start_failed"
	KeyGenerateWait     = "generate_wait"
	KeyGenerateNoEvents = "generate_no_events"
	KeyGenerateFailed   = "generate_failed"
	KeyEventSaved       = "event_saved"
	KeyEventSaveFailed  = "event_save_failed"
)

// RequiredKeys must be present in every locale file.
var RequiredKeys = []string{
	KeyWelcome, KeyStartFailed, KeyGenerateWait, KeyGenerateNoEvents,
	KeyGenerateFailed, KeyEventSaved, KeyEventSaveFailed,
}

type Translator struct {
	lang         string
	translations map[string]string
}

// NewTranslator loads locales/<langCode>.yaml from fsys.
func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	// fs.FS paths are always slash-separated.
	filePath := path.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", filePath, err)
	}
	t, err := newTranslatorFromBytes(data)
	if err != nil {
		return nil, err
	}
	t.lang = langCode
	for _, k := range RequiredKeys {
		if _, ok := t.translations[k]; !ok {
			return nil, fmt.Errorf("translation file %s: missing key %q", filePath, k)
		}
	}
	return t, nil
}

func newTranslatorFromBytes(data []byte) (*Translator, error) {
	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}
	return &Translator{translations: translations}, nil
}

// T returns the text for key, formatted with args. Unknown keys are returned as-is.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

func (t *Translator) Lang() string { return t.lang }
