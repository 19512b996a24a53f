package schema

import "testing"

// --- tier registry integrity ---

func TestTiers_PrefixesDistinct(t *testing.T) {
	seen := make(map[string]Tier)
	for _, tier := range rootTiers {
		prefix := tiers[tier].prefix
		if other, dup := seen[prefix]; dup {
			t.Errorf("prefix %q shared by %v and %v", prefix, other, tier)
		}
		seen[prefix] = tier
	}
}

func TestRecognitionOrder_CoversEveryTier(t *testing.T) {
	if len(recognitionOrder) != len(tiers) {
		t.Fatalf("recognition order lists %d tiers, registry has %d", len(recognitionOrder), len(tiers))
	}
	seen := make(map[Tier]bool)
	for _, tier := range recognitionOrder {
		if seen[tier] {
			t.Errorf("tier %v listed twice", tier)
		}
		seen[tier] = true
		if _, ok := tiers[tier]; !ok {
			t.Errorf("tier %v not in registry", tier)
		}
	}
}

func TestRecognitionOrder_PartFirstThenLongestPrefix(t *testing.T) {
	if recognitionOrder[0] != Part {
		t.Fatal("part names must be recognized before the root tiers")
	}
	pos := make(map[Tier]int)
	for i, tier := range recognitionOrder {
		pos[tier] = i
	}
	if pos[Computed] > pos[Imported] {
		t.Error("the \"__\" prefix must be tried before \"_\"")
	}
}

func TestTierString(t *testing.T) {
	if Computed.String() != "computed" {
		t.Errorf("expected 'computed', got %q", Computed.String())
	}
	if Tier(99).String() != "unknown" {
		t.Errorf("expected 'unknown' for out-of-range tier, got %q", Tier(99).String())
	}
}

// Every root-tier pattern captures the bare base name so round trips
// recover exactly what the prefix was applied to.
func TestTierPatterns_CaptureBase(t *testing.T) {
	for _, tier := range rootTiers {
		info := tiers[tier]
		name := info.prefix + "spike_sorting"
		m := info.pattern.FindStringSubmatch(name)
		if m == nil {
			t.Errorf("%v: pattern rejects its own prefix on %q", tier, name)
			continue
		}
		if m[1] != "spike_sorting" {
			t.Errorf("%v: expected captured base 'spike_sorting', got %q", tier, m[1])
		}
	}
}
