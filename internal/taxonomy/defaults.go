package taxonomy

// Default returns the built-in taxonomy for block textures.
func Default() Taxonomy {
	return Taxonomy{
		Categories: []Category{
			{Tag: TagVertical, Keywords: []string{
				"fence", "sign", "_shelf", "trapdoor", "pane", "wall", "banner", "candle", "bars", "chain", "rod",
			}},
			{Tag: TagHorizontal, Keywords: []string{
				"trapdoor", "bed", "carpet", "fan", "cake", "campfire", "chain", "detector", "frame", "rod",
			}},
			{Tag: TagTranslucent, Keywords: []string{
				"leaves", "glass", "cobweb", "grate", "spawner", "vault",
			}},
			{Tag: TagDecoration, Keywords: []string{
				"sapling", "allium", "cluster", "anvil", "azalea", "azure", "shoot", "beacon", "roots", "bell",
				"dripleaf", "glazed", "box", "orchid", "bookshelf", "coral", "stand", "brown_mushroom",
				"red_mushroom", "bush", "cactus", "sensor", "carrots", "cauldron", "vines", "command", "chest",
				"flower", "plant", "eyeblossom", "_ore", "cocoa", "conduit", "golem", "lantern", "torch", "craft",
				"fungus", "dandelion", "pot", "dispenser", "egg", "ghast", "dropper", "table", "fern", "frogspawn",
				"lichen", "grindstone", "core", "hopper", "ladder", "jigsaw", "_bud", "litter", "lectern", "lilac",
				"lily", "propagule", "melon_stem", "pumpkin_stem", "sprouts", "wart_stage", "observer", "tulip",
				"oxeye", "hanging_moss", "peony", "petals", "pitcher", "pointed", "poppy", "comparator",
				"repeater", "clump", "scaffolding", "catalyst", "shrieker", "vein", "pickle", "grass", "blossom",
				"stonecutter", "structure", "cane", "target", "test", "tnt", "tripwire", "wheat", "rose",
			}},
		},
		Overrides: []Override{
			{Pattern: "mushroom_block", Mode: MatchSubstring, Tag: TagBlock},
			{Pattern: "bedrock", Mode: MatchSubstring, Tag: TagBlock},
			{Pattern: "bamboo", Mode: MatchExact, Tag: TagVertical},
			{Pattern: "chain_", Mode: MatchSubstring, Tag: TagDecoration},
		},
		Exclusions: Exclusions{
			Keywords: []string{
				"button", "door", "plate", "slab", "stairs", "rail", "barrier", "head", "gateway", "portal",
				"farmland", "kelp", "lava", "wire", "seagrass", "skeleton", "soul_fire", "void", "water", "dust",
				"fire_0", "fire_1", "emissive", "anchor", "active", "destroy", "debug", "item",
			},
			Exceptions: []string{"item_frame", "glow_item_frame"},
		},
		DefaultTag: TagBlock,
	}
}
