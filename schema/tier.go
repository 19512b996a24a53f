package schema

import "regexp"

// Tier classifies a schema entity by how its rows come to exist.
type Tier int

const (
	// Manual tables hold values entered by hand.
	Manual Tier = iota

	// Lookup tables hold reference values. Equivalent to Manual in
	// storage terms; the distinction is semantic only.
	Lookup

	// Imported tables are populated from external data sources.
	Imported

	// Computed tables are populated from other tables in the schema.
	Computed

	// Part tables hold detail rows owned by a master entity. A part is
	// never populated independently of its master.
	Part
)

// baseName is the shape of every un-prefixed storage name: lowercase
// words separated by single underscores. A double underscore can never
// occur inside a base name, which is what keeps part names and the
// root-tier prefixes unambiguous.
const baseName = `[a-z][a-z0-9]*(?:_[a-z][a-z0-9]*)*`

// tierInfo is the descriptor consulted for each tier. Prefixes are
// distinct by construction: "", "#", "_", "__".
type tierInfo struct {
	name     string
	prefix   string
	populate bool
	pattern  *regexp.Regexp
}

var tiers = map[Tier]tierInfo{
	Manual:   {"manual", "", false, regexp.MustCompile(`^(` + baseName + `)$`)},
	Lookup:   {"lookup", "#", false, regexp.MustCompile(`^#(` + baseName + `)$`)},
	Imported: {"imported", "_", true, regexp.MustCompile(`^_(` + baseName + `)$`)},
	Computed: {"computed", "__", true, regexp.MustCompile(`^__(` + baseName + `)$`)},
	Part:     {"part", "", false, regexp.MustCompile(`^((?:__|_|#)?` + baseName + `)__(` + baseName + `)$`)},
}

// recognitionOrder fixes the order in which tier patterns are tried.
// Part must come first: a part name contains a root prefix as an infix
// before the "__" separator. Among root tiers, longer prefixes are
// tried before their shorter prefixes ("__" before "_") so a computed
// name is never taken for an imported one.
var recognitionOrder = []Tier{Part, Computed, Imported, Lookup, Manual}

// rootTiers are the tiers a part master may carry.
var rootTiers = []Tier{Manual, Lookup, Imported, Computed}

func (t Tier) String() string {
	info, ok := tiers[t]
	if !ok {
		return "unknown"
	}
	return info.name
}

// Prefix returns the storage-name prefix encoding this tier.
func (t Tier) Prefix() string {
	return tiers[t].prefix
}

// SupportsPopulation reports whether tables of this tier are filled by
// the populate machinery rather than by direct inserts.
func (t Tier) SupportsPopulation() bool {
	return tiers[t].populate
}

// Name is the decoded identity of a storage name.
type Name struct {
	// Tier is the tier the name belongs to.
	Tier Tier

	// Base is the un-prefixed base name. For parts this is the part's
	// own base, not the master's.
	Base string

	// MasterTier and MasterBase identify the owning master when Tier
	// is Part; they are zero otherwise. The master's storage name is
	// MasterTier.Prefix() + MasterBase.
	MasterTier Tier
	MasterBase string
}

// Recognize decodes a storage name into its tier and base name.
// Patterns are tried in recognitionOrder; as a defensive check every
// pattern is evaluated, and ErrAmbiguousName is returned if more than
// one matches. Names outside every pattern return ErrNotRecognized,
// which callers should treat as a normal outcome for foreign names.
func Recognize(storageName string) (Name, error) {
	var (
		found Name
		n     int
	)
	for _, t := range recognitionOrder {
		m := tiers[t].pattern.FindStringSubmatch(storageName)
		if m == nil {
			continue
		}
		n++
		if n > 1 {
			return Name{}, ErrAmbiguousName
		}
		if t == Part {
			master, err := Recognize(m[1])
			if err != nil {
				return Name{}, err
			}
			found = Name{Tier: Part, Base: m[2], MasterTier: master.Tier, MasterBase: master.Base}
			continue
		}
		found = Name{Tier: t, Base: m[1]}
	}
	if n == 0 {
		return Name{}, ErrNotRecognized
	}
	return found, nil
}
