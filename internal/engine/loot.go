package engine

import "math/rand"

type LootItem struct {
	Type   LootType
	Name   string
	Rarity Rarity
}

// Key is the ownership key used to exclude already-owned drops.
func (l LootItem) Key() string {
	return string(l.Type) + ":" + l.Name
}

var lootCatalog = []LootItem{
	{LootTitle, "The Persistent", RarityCommon},
	{LootTitle, "Never Miss Twice", RarityRare},
	{LootTitle, "2-Min Starter", RarityCommon},
	{LootTitle, "Streak Keeper", RarityRare},
	{LootTitle, "Daily Warrior", RarityCommon},
	{LootTitle, "Quest Master", RarityEpic},
	{LootTitle, "Dungeon Conqueror", RarityEpic},
	{LootTitle, "The Awakened", RarityLegendary},

	{LootBadge, "Bronze Shield", RarityCommon},
	{LootBadge, "Silver Sword", RarityRare},
	{LootBadge, "Gold Crown", RarityEpic},
	{LootBadge, "Diamond Star", RarityLegendary},

	{LootTheme, "midnight", RarityRare},
	{LootTheme, "crimson", RarityEpic},
	{LootTheme, "aurora", RarityLegendary},

	{LootArtifact, "Ember Charm", RarityRare},
	{LootArtifact, "Scholar's Lens", RarityEpic},
	{LootArtifact, "Gilded Dice", RarityRare},
	{LootArtifact, "Runner's Band", RarityRare},
	{LootArtifact, "Quill of Focus", RarityEpic},
	{LootArtifact, "Soft Landing", RarityEpic},
	{LootArtifact, "Hourglass Shard", RarityLegendary},
}

// rarityWeight duplicates candidates into the weighted pool. Commons are
// the most likely draw, legendaries the least.
func rarityWeight(r Rarity) int {
	switch r {
	case RarityCommon:
		return 8
	case RarityRare:
		return 4
	case RarityEpic:
		return 2
	default:
		return 1
	}
}

// LootCatalog returns a copy of the full drop table.
func LootCatalog() []LootItem {
	out := make([]LootItem, len(lootCatalog))
	copy(out, lootCatalog)
	return out
}

// RollForLoot rolls the flat drop gate once, then picks a rarity-weighted
// item from the catalog minus already-owned keys. Returns nil on no drop or
// when everything eligible is owned.
func RollForLoot(owned map[string]bool, r *rand.Rand) *LootItem {
	if r.Float64() > LootDropChance {
		return nil
	}

	var weighted []LootItem
	for _, item := range lootCatalog {
		if owned[item.Key()] {
			continue
		}
		for i := 0; i < rarityWeight(item.Rarity); i++ {
			weighted = append(weighted, item)
		}
	}
	if len(weighted) == 0 {
		return nil
	}

	picked := weighted[r.Intn(len(weighted))]
	return &picked
}
