package keywords

// DefaultTables returns the built-in keyword tables. These are the
// values the service runs with when no calibration file is given; a
// calibration file overrides whole tables, not single entries.
func DefaultTables() *Tables {
	return &Tables{
		Expansion: map[string][]string{
			"apple":  {"apple fruit", "fresh apple", "apple orchard"},
			"orange": {"orange fruit", "fresh orange", "citrus orange"},
			"cherry": {"cherry fruit", "fresh cherry", "cherry tree"},
			"rose":   {"rose flower", "rose garden", "rose bush"},
			"tulip":  {"tulip flower", "tulip garden", "tulip field"},
			"python": {"python programming", "python language", "python code"},
			"java":   {"java programming", "java language", "java code"},
		},

		Intents: []IntentKeywords{
			{
				Intent: "how_to",
				Keywords: []string{
					"how to", "how do", "tutorial", "guide", "learn", "step by step",
					"diy", "fix", "install", "setup", "build", "make",
				},
			},
			{
				Intent: "review",
				Keywords: []string{
					"review", "vs", "versus", "comparison", "compare", "best",
					"top 10", "worth it", "should i buy", "rating", "pros and cons",
				},
			},
			{
				Intent: "entertainment",
				Keywords: []string{
					"funny", "prank", "challenge", "reaction", "compilation",
					"meme", "gameplay", "trailer", "highlights", "vlog",
				},
			},
			{
				Intent: "factual",
				Keywords: []string{
					"what is", "what are", "facts", "history", "explained",
					"science", "meaning", "definition", "why does", "who is",
				},
			},
		},

		Recency: []RecencyBucket{
			{
				Name:   "very_recent",
				Factor: 1.15,
				Phrases: []string{
					"minutes ago", "hours ago", "hour ago", "today", "breaking", "just now",
				},
			},
			{
				Name:   "recent",
				Factor: 1.10,
				Phrases: []string{
					"yesterday", "days ago", "day ago", "this week",
				},
			},
			{
				Name:   "somewhat_recent",
				Factor: 1.05,
				Phrases: []string{
					"weeks ago", "week ago", "this month",
				},
			},
		},

		Topics: map[string][]string{
			"cooking": {
				"recipe", "cooking", "baking", "kitchen", "ingredients", "oven",
				"chef", "meal", "dish", "pie", "dessert",
			},
			"technology": {
				"iphone", "android", "smartphone", "laptop", "software", "app",
				"gadget", "tech", "device", "keynote", "processor", "update",
			},
			"gardening": {
				"garden", "orchard", "planting", "soil", "harvest", "seeds",
				"pruning", "bloom", "grow",
			},
			"music": {
				"song", "album", "lyrics", "band", "concert", "remix",
				"playlist", "singer",
			},
			"gaming": {
				"gameplay", "walkthrough", "speedrun", "console", "fps",
				"multiplayer", "esports",
			},
			"sports": {
				"match", "tournament", "league", "championship", "goal",
				"workout", "training",
			},
		},

		QueryTopics: map[string]string{
			"recipe":   "cooking",
			"cooking":  "cooking",
			"baking":   "cooking",
			"apple":    "cooking",
			"orchard":  "gardening",
			"garden":   "gardening",
			"planting": "gardening",
			"iphone":   "technology",
			"laptop":   "technology",
			"software": "technology",
		},

		TopicConflicts: map[string][]string{
			"cooking":    {"technology", "gaming"},
			"gardening":  {"technology", "gaming"},
			"technology": {"cooking", "gardening"},
			"music":      {"sports"},
		},

		MusicContent: []string{
			"official video", "official music video", "lyric video", "lyrics",
			"music video", "official audio", "full album", "audio only",
			"song", "remix", "cover version", "karaoke", "instrumental",
			"live performance", "concert", "mv", "feat.", "ft.", "album",
			"soundtrack", "tracklist", "mixtape", "acoustic version",
			"extended mix", "radio edit", "visualizer", "8d audio",
		},

		MusicQuery: []string{
			"song", "songs", "music", "lyrics", "album", "artist", "band",
			"soundtrack", "playlist", "remix", "concert", "audio",
		},

		Brand: map[string][]string{
			"apple": {
				"iphone", "ipad", "macbook", "mac", "ios", "macos", "app store",
				"tim cook", "steve jobs", "cupertino", "wozniak", "event",
				"keynote", "airpods", "watch", "airplay", "siri", "icloud",
				"battery", "charge", "upgrade",
			},
			"orange": {
				"orange juice brand", "orange county", "orange is the new black",
				"theory", "mobile network", "telecom",
			},
			"cherry": {
				"cherry picking data", "cherry mx", "keyboard switch",
			},
		},

		Fruit: map[string][]string{
			"apple": {
				"fruit", "orchard", "tree", "picking", "harvest", "recipe",
				"cooking", "pie", "juice", "cider", "farmer", "garden",
				"organic", "crisp", "sweet", "health", "nutrition", "vitamin",
			},
			"orange": {
				"fruit", "citrus", "tree", "orchard", "vitamin c", "juice",
				"peel", "zest", "sweet", "taste", "recipe", "health",
			},
			"cherry": {
				"fruit", "tree", "orchard", "picking", "recipe", "pie",
				"sweet", "tart",
			},
		},

		FlowerBoost: map[string][]string{
			"rose": {
				"flower", "petal", "bloom", "garden", "bouquet", "thorn",
				"bush", "fragrance", "florist", "pruning", "stem",
			},
			"tulip": {
				"flower", "bulb", "bloom", "garden", "field", "spring",
				"petal", "florist",
			},
			"lily": {
				"flower", "bloom", "garden", "pond", "petal", "bouquet",
				"florist",
			},
		},

		FlowerConflict: map[string][]string{
			"rose": {
				"rose gold", "derrick rose", "rosé wine", "axl rose",
			},
			"tulip": {
				"tulip mania", "tulip chair",
			},
			"lily": {
				"lily allen", "lilypad framework",
			},
		},

		VisualCategories: []VisualCategory{
			{
				Name:         "fruit",
				QueryHints:   []string{"apple", "orange", "cherry", "fruit"},
				ContentHints: []string{"recipe", "orchard", "harvest", "fruit", "organic"},
				Phrases: []string{
					"a photo of fresh fruit",
					"fruit on a tree",
					"food being prepared in a kitchen",
				},
			},
			{
				Name:         "flower",
				QueryHints:   []string{"rose", "tulip", "lily", "flower"},
				ContentHints: []string{"garden", "bloom", "bouquet", "petal"},
				Phrases: []string{
					"a photo of a flower",
					"a garden in bloom",
					"a bouquet of flowers",
				},
			},
			{
				Name:         "technology",
				QueryHints:   []string{"iphone", "laptop", "smartphone", "gadget"},
				ContentHints: []string{"unboxing", "review", "specs", "device"},
				Phrases: []string{
					"a photo of an electronic device",
					"a product shot on a desk",
					"a computer or phone screen",
				},
			},
		},
	}
}
