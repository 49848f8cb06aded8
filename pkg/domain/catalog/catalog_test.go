package catalog

import (
	"reflect"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(
		Plugin{Name: "drupal", Version: "1.0.0", Description: "Drupal standards"},
		Plugin{Name: "owasp", Version: "0.2.0", Description: "OWASP guidelines"},
	)

	if got := reg.Get("owasp"); got == nil || got.Version != "0.2.0" {
		t.Fatalf("Get(owasp) = %+v", got)
	}
	if got := reg.Get("missing"); got != nil {
		t.Fatalf("Get(missing) = %+v, want nil", got)
	}

	infos := reg.Infos()
	want := []Info{
		{Name: "drupal", Version: "1.0.0", Description: "Drupal standards"},
		{Name: "owasp", Version: "0.2.0", Description: "OWASP guidelines"},
	}
	if !reflect.DeepEqual(infos, want) {
		t.Fatalf("Infos() = %+v, want %+v", infos, want)
	}
}

func TestRegistrySourcesOrder(t *testing.T) {
	reg := NewRegistry(
		Plugin{Name: "a", Sources: []string{"a/one.csv", "a/two.csv"}},
		Plugin{Name: "b", Sources: []string{"b/one.csv"}},
	)

	want := []string{"a/one.csv", "a/two.csv", "b/one.csv"}
	if got := reg.Sources(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sources() = %v, want %v", got, want)
	}
}

func TestCategoryDescriptionsFirstDeclarationWins(t *testing.T) {
	reg := NewRegistry(
		Plugin{Name: "a", Categories: map[string]string{
			"shared": "from a",
			"a_only": "a description",
		}},
		Plugin{Name: "b", Categories: map[string]string{
			"shared": "from b",
			"b_only": "b description",
		}},
	)

	merged := reg.CategoryDescriptions()
	if merged["shared"] != "from a" {
		t.Fatalf("shared = %q, want first declaration to win", merged["shared"])
	}
	if merged["a_only"] != "a description" || merged["b_only"] != "b description" {
		t.Fatalf("merged = %+v", merged)
	}
}
