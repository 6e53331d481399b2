package worlds

import "strings"

// Biome is a themed word-list unit of progression.
type Biome struct {
	Slug string
	Name string
	Note string
}

// Category groups biomes on the overworld map.
type Category struct {
	Key    string
	Name   string
	Biomes []Biome
}

// The starter scope is always unlocked, regardless of stored state.
const (
	StarterDimension = "overworld"
	StarterBiome     = "plains"
)

// Dimensions lists the top-level world groupings. Only the overworld has a
// biome catalog today; the others exist on the map but stay locked.
var Dimensions = []string{"overworld", "nether", "the-end"}

// OverworldCategories is the canonical map layout. Flattened category by
// category, it defines the unlock ordering of biomes.
var OverworldCategories = []Category{
	{
		Key:  "plains",
		Name: "Plains",
		Biomes: []Biome{
			{Slug: "plains", Name: "Plains", Note: "Villages, farm animals"},
			{Slug: "ice-plains", Name: "Ice Plains", Note: "Snowy tundra"},
			{Slug: "ice-spike-plains", Name: "Ice Spike Plains"},
			{Slug: "sunflower-plains", Name: "Sunflower Plains"},
			{Slug: "snowy-plains", Name: "Snowy Plains"},
			{Slug: "mushroom-field", Name: "Mushroom Field"},
			{Slug: "savanna", Name: "Savanna"},
		},
	},
	{
		Key:  "woodlands",
		Name: "Woodlands",
		Biomes: []Biome{
			{Slug: "forest", Name: "Forest"},
			{Slug: "birch-forest", Name: "Birch Forest"},
			{Slug: "dark-forest", Name: "Dark Forest"},
			{Slug: "flower-forest", Name: "Flower Forest"},
			{Slug: "old-growth-birch-forest", Name: "Old Growth Birch Forest"},
			{Slug: "taiga", Name: "Taiga"},
			{Slug: "old-growth-spruce-taiga", Name: "Old Growth Spruce Taiga"},
			{Slug: "old-growth-pine-taiga", Name: "Old Growth Pine Taiga"},
			{Slug: "snowy-taiga", Name: "Snowy Taiga"},
			{Slug: "jungle", Name: "Jungle"},
			{Slug: "bamboo-jungle", Name: "Bamboo Jungle"},
			{Slug: "sparse-jungle", Name: "Sparse Jungle"},
			{Slug: "grove", Name: "Grove"},
			{Slug: "cherry-grove", Name: "Cherry Grove"},
			{Slug: "pale-garden", Name: "Pale Garden"},
		},
	},
	{
		Key:  "caves",
		Name: "Caves",
		Biomes: []Biome{
			{Slug: "deep-dark", Name: "Deep Dark"},
			{Slug: "dripstone-caves", Name: "Dripstone Caves"},
			{Slug: "lush-caves", Name: "Lush Caves"},
		},
	},
	{
		Key:  "mountains",
		Name: "Mountains",
		Biomes: []Biome{
			{Slug: "jagged-peaks", Name: "Jagged Peaks"},
			{Slug: "frozen-peaks", Name: "Frozen Peaks"},
			{Slug: "stony-peaks", Name: "Stony Peaks"},
			{Slug: "snowy-slopes", Name: "Snowy Slopes"},
			{Slug: "windswept-hills", Name: "Windswept Hills"},
			{Slug: "windswept-forest", Name: "Windswept Forest"},
			{Slug: "windswept-gravelly-hills", Name: "Windswept Gravelly Hills"},
			{Slug: "meadow", Name: "Meadow"},
			{Slug: "stony-shores", Name: "Stony Shores"},
			{Slug: "savanna-plateau", Name: "Savanna Plateau"},
			{Slug: "windswept-savanna", Name: "Windswept Savanna"},
		},
	},
	{
		Key:  "swamps",
		Name: "Swamps",
		Biomes: []Biome{
			{Slug: "swamp", Name: "Swamp"},
			{Slug: "mangrove-swamp", Name: "Mangrove Swamp"},
		},
	},
	{
		Key:  "sandy",
		Name: "Sandy Areas",
		Biomes: []Biome{
			{Slug: "badlands", Name: "Badlands"},
			{Slug: "wooded-badlands", Name: "Wooded Badlands"},
			{Slug: "eroded-badlands", Name: "Eroded Badlands"},
			{Slug: "beach", Name: "Beach"},
			{Slug: "snowy-beach", Name: "Snowy Beach"},
			{Slug: "desert", Name: "Desert"},
		},
	},
	{
		Key:  "water",
		Name: "Water Areas",
		Biomes: []Biome{
			{Slug: "river", Name: "River"},
			{Slug: "frozen-river", Name: "Frozen River"},
			{Slug: "ocean", Name: "Ocean"},
			{Slug: "cold-ocean", Name: "Cold Ocean"},
			{Slug: "deep-ocean", Name: "Deep Ocean"},
			{Slug: "frozen-ocean", Name: "Frozen Ocean"},
			{Slug: "lukewarm-ocean", Name: "Lukewarm Ocean"},
			{Slug: "warm-ocean", Name: "Warm Ocean"},
		},
	},
}

var (
	flatBiomes []Biome
	biomeIndex map[string]int
)

func init() {
	biomeIndex = make(map[string]int)
	for _, cat := range OverworldCategories {
		for _, b := range cat.Biomes {
			biomeIndex[b.Slug] = len(flatBiomes)
			flatBiomes = append(flatBiomes, b)
		}
	}
}

// AllBiomes returns the overworld biomes in canonical unlock order.
func AllBiomes() []Biome {
	out := make([]Biome, len(flatBiomes))
	copy(out, flatBiomes)
	return out
}

// ValidScope reports whether (dimension, biome) names a playable scope.
func ValidScope(dimension, biome string) bool {
	if strings.ToLower(dimension) != StarterDimension {
		return false
	}
	_, ok := biomeIndex[strings.ToLower(biome)]
	return ok
}

// NextBiome returns the slug following the given biome in canonical order,
// or false when the biome is unknown or last.
func NextBiome(slug string) (string, bool) {
	i, ok := biomeIndex[strings.ToLower(slug)]
	if !ok || i+1 >= len(flatBiomes) {
		return "", false
	}
	return flatBiomes[i+1].Slug, true
}

// BiomeName returns the display name for a slug, falling back to a
// title-cased form of the slug itself.
func BiomeName(slug string) string {
	if i, ok := biomeIndex[strings.ToLower(slug)]; ok {
		return flatBiomes[i].Name
	}
	return TitleCase(slug)
}

// TitleCase turns a slug like "ice-spike-plains" into "Ice Spike Plains".
func TitleCase(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
