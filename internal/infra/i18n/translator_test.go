//go:build !integration

package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestTranslator(t *testing.T) {
	translator, err := newTranslatorFromBytes([]byte("greeting: hello\nwelcome_user: hello %s"))
	if err != nil {
		t.Fatalf("newTranslatorFromBytes failed: %v", err)
	}

	t.Run("should translate a simple key", func(t *testing.T) {
		if got := translator.T("greeting"); got != "hello" {
			t.Errorf("wanted 'hello', got '%s'", got)
		}
	})

	t.Run("should return key if not found", func(t *testing.T) {
		if got := translator.T("nonexistent_key"); got != "nonexistent_key" {
			t.Errorf("wanted 'nonexistent_key', got '%s'", got)
		}
	})

	t.Run("should format arguments correctly", func(t *testing.T) {
		if got := translator.T("welcome_user", "Ada"); got != "hello Ada" {
			t.Errorf("wanted 'hello Ada', got '%s'", got)
		}
	})
}

func TestNewTranslator_EmbeddedEnglish(t *testing.T) {
	tr, err := NewTranslator(LocalesFS, "en")
	if err != nil {
		t.Fatalf("NewTranslator(en) failed: %v", err)
	}
	if tr.Lang() != "en" {
		t.Errorf("expected lang 'en', got %q", tr.Lang())
	}

	cases := []struct{ got, want string }{
		{tr.T(KeyGenerateNoEvents), "No events found for the day."},
		{tr.T(KeyGenerateFailed), "Failed to generate posts. Please try again later."},
		{tr.T(KeyEventSaved), "Noted. Keep texting me your thoughts. To generate posts, type /generate"},
		{tr.T(KeyEventSaveFailed), "Failed to save the event."},
		{tr.T(KeyStartFailed), "Something went wrong while saving your data."},
		{tr.T(KeyWelcome, "Ada"), "Hey! Ada, Welcome. I will write highly engaging social media posts for you. Keep feeding me your events."},
		{tr.T(KeyGenerateWait, "Ada"), "Hey! Ada, Kindly wait a moment. I am curating posts for you"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("wanted %q, got %q", tc.want, tc.got)
		}
	}
}

func TestNewTranslator_Errors(t *testing.T) {
	t.Run("missing locale", func(t *testing.T) {
		if _, err := NewTranslator(fstest.MapFS{}, "de"); err == nil {
			t.Fatal("expected an error for a missing locale")
		}
	})

	t.Run("missing required key", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/xx.yaml": {Data: []byte("welcome: 'hi %s'")},
		}
		_, err := NewTranslator(fsys, "xx")
		if err == nil || !strings.Contains(err.Error(), "missing key") {
			t.Fatalf("expected missing key error, got %v", err)
		}
	})
}
