package rooms

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSlugifyProducesURLSafeTokens(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Kitchen":                "kitchen",
		"  Grand   Foyer  ":     "grand-foyer",
		"The Master's Study":    "the-masters-study",
		"east_wing -- corridor": "east-wing-corridor",
		"Vault #7 (locked)":     "vault-7-locked",
		"UPPER CASE":            "upper-case",
		"attic _ crawlspace":    "attic-crawlspace",
	}

	for input, expected := range cases {
		if got := Slugify(input); got != expected {
			t.Errorf("Slugify(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestSlugifyCharset(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	names := []string{"Kitchen", "Grand Foyer", "Room 101", "a--b", "Héllo Wörld"}
	for _, name := range names {
		slug := Slugify(name)
		if slug == "" {
			t.Errorf("Slugify(%q) produced an empty slug", name)
			continue
		}
		if slug != strings.ToLower(slug) {
			t.Errorf("Slugify(%q) = %q is not lower-case", name, slug)
		}
		if !pattern.MatchString(slug) {
			t.Errorf("Slugify(%q) = %q has a leading/trailing hyphen or stray characters", name, slug)
		}
	}
}

func TestSlugifyEmptyName(t *testing.T) {
	t.Parallel()

	if got := Slugify(""); got != "" {
		t.Fatalf("Slugify(\"\") = %q, want empty", got)
	}
	if got := Slugify("!!!"); got != "" {
		t.Fatalf("Slugify(\"!!!\") = %q, want empty", got)
	}
}

func TestMakeSlugAppendsBase36Timestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 10, 31, 23, 59, 0, 0, time.UTC)

	slug := MakeSlug("Kitchen", now)
	if !regexp.MustCompile(`^kitchen-[0-9a-z]+$`).MatchString(slug) {
		t.Fatalf("MakeSlug produced %q, want kitchen-<base36>", slug)
	}

	// An empty name still yields the bare suffix form.
	empty := MakeSlug("", now)
	if !regexp.MustCompile(`^-[0-9a-z]+$`).MatchString(empty) {
		t.Fatalf("MakeSlug with empty name produced %q, want -<base36>", empty)
	}

	later := MakeSlug("Kitchen", now.Add(time.Second))
	if slug == later {
		t.Fatalf("expected distinct suffixes for distinct timestamps, got %q twice", slug)
	}
}
