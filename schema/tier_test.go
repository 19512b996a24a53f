package schema_test

import (
	"errors"
	"testing"

	"github.com/jacentio/stratum/schema"
)

func TestTierPrefixes(t *testing.T) {
	tests := []struct {
		tier   schema.Tier
		prefix string
	}{
		{schema.Manual, ""},
		{schema.Lookup, "#"},
		{schema.Imported, "_"},
		{schema.Computed, "__"},
	}

	for _, tt := range tests {
		if got := tt.tier.Prefix(); got != tt.prefix {
			t.Errorf("%v: expected prefix %q, got %q", tt.tier, tt.prefix, got)
		}
	}
}

func TestTierSupportsPopulation(t *testing.T) {
	tests := []struct {
		tier     schema.Tier
		populate bool
	}{
		{schema.Manual, false},
		{schema.Lookup, false},
		{schema.Imported, true},
		{schema.Computed, true},
		{schema.Part, false},
	}

	for _, tt := range tests {
		if got := tt.tier.SupportsPopulation(); got != tt.populate {
			t.Errorf("%v: expected SupportsPopulation %v, got %v", tt.tier, tt.populate, got)
		}
	}
}

func TestRecognize_RootTiers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		tier schema.Tier
		base string
	}{
		{"manual", "lab_session", schema.Manual, "lab_session"},
		{"lookup", "#brain_region", schema.Lookup, "brain_region"},
		{"imported", "_recording", schema.Imported, "recording"},
		{"computed", "__spike", schema.Computed, "spike"},
		{"computed multiword", "__spike_sorting_run", schema.Computed, "spike_sorting_run"},
		{"digits", "camera2", schema.Manual, "camera2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.Recognize(tt.in)
			if err != nil {
				t.Fatalf("Recognize(%q): %v", tt.in, err)
			}
			if got.Tier != tt.tier {
				t.Errorf("expected tier %v, got %v", tt.tier, got.Tier)
			}
			if got.Base != tt.base {
				t.Errorf("expected base %q, got %q", tt.base, got.Base)
			}
		})
	}
}

func TestRecognize_PartNames(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		masterTier schema.Tier
		masterBase string
		base       string
	}{
		{"imported master", "_recording__channel_detail", schema.Imported, "recording", "channel_detail"},
		{"manual master", "lab_session__note", schema.Manual, "lab_session", "note"},
		{"lookup master", "#brain_region__layer", schema.Lookup, "brain_region", "layer"},
		{"computed master", "__spike__waveform", schema.Computed, "spike", "waveform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.Recognize(tt.in)
			if err != nil {
				t.Fatalf("Recognize(%q): %v", tt.in, err)
			}
			if got.Tier != schema.Part {
				t.Fatalf("expected Part, got %v", got.Tier)
			}
			if got.MasterTier != tt.masterTier || got.MasterBase != tt.masterBase {
				t.Errorf("expected master (%v, %q), got (%v, %q)",
					tt.masterTier, tt.masterBase, got.MasterTier, got.MasterBase)
			}
			if got.Base != tt.base {
				t.Errorf("expected base %q, got %q", tt.base, got.Base)
			}
		})
	}
}

func TestRecognize_NotRecognized(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"uppercase", "LabSession"},
		{"leading digit", "2photon"},
		{"trailing underscore", "session_"},
		{"triple underscore prefix", "___spike"},
		{"nested part", "a__b__c"},
		{"unknown prefix", "~session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Recognize(tt.in)
			if !errors.Is(err, schema.ErrNotRecognized) {
				t.Errorf("Recognize(%q): expected ErrNotRecognized, got %v", tt.in, err)
			}
		})
	}
}

// A well-formed name from any tier must recognize as exactly that
// tier; the prefixes never shadow one another.
func TestRecognize_NoCrossTierAmbiguity(t *testing.T) {
	names := map[string]schema.Tier{
		"session":            schema.Manual,
		"#session":           schema.Lookup,
		"_session":           schema.Imported,
		"__session":          schema.Computed,
		"session__detail":    schema.Part,
		"_session__detail":   schema.Part,
		"__session__detail":  schema.Part,
		"#session__detail":   schema.Part,
	}

	for in, tier := range names {
		got, err := schema.Recognize(in)
		if err != nil {
			t.Errorf("Recognize(%q): %v", in, err)
			continue
		}
		if got.Tier != tier {
			t.Errorf("Recognize(%q): expected %v, got %v", in, tier, got.Tier)
		}
	}
}

func TestStorageCase(t *testing.T) {
	got, err := schema.StorageCase("LabSession")
	if err != nil {
		t.Fatalf("StorageCase: %v", err)
	}
	if got != "lab_session" {
		t.Errorf("expected 'lab_session', got %q", got)
	}

	if _, err := schema.StorageCase("lab session"); !errors.Is(err, schema.ErrBadIdentifier) {
		t.Errorf("expected ErrBadIdentifier, got %v", err)
	}
}

// Storage names of declared entities round-trip through recognition.
func TestRecognize_RoundTrip(t *testing.T) {
	tests := []struct {
		typeName string
		tier     schema.Tier
	}{
		{"LabSession", schema.Manual},
		{"BrainRegion", schema.Lookup},
		{"Recording", schema.Imported},
		{"Spike", schema.Computed},
	}

	for _, tt := range tests {
		ent, err := schema.New(tt.typeName, tt.tier)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.typeName, err)
		}
		got, err := schema.Recognize(ent.StorageName())
		if err != nil {
			t.Fatalf("Recognize(%q): %v", ent.StorageName(), err)
		}
		base, _ := schema.StorageCase(tt.typeName)
		if got.Tier != tt.tier || got.Base != base {
			t.Errorf("%q: expected (%v, %q), got (%v, %q)",
				tt.typeName, tt.tier, base, got.Tier, got.Base)
		}
	}
}
