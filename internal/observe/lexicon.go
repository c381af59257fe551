package observe

// Lexical cue tables. A tag is attributed to a speaker when any of its cues
// appears as a case-insensitive substring of an utterance.

var traitCues = map[string][]string{
	"adventurous":   {"climb", "adventure", "explore", "travel", "hike", "expedition", "journey"},
	"creative":      {"write", "photo", "art", "creative", "music", "paint", "design", "compose"},
	"analytical":    {"engineer", "code", "solve", "analyze", "data", "logic", "research", "study"},
	"nurturing":     {"garden", "grow", "care", "tend", "help", "support", "mentor"},
	"social":        {"meet", "friends", "together", "share", "party", "hang", "community", "network"},
	"curious":       {"wonder", "curious", "learn", "discover", "explore", "why", "how", "question"},
	"organized":     {"plan", "schedule", "organize", "structure", "system", "routine"},
	"spontaneous":   {"spontaneous", "random", "sudden", "impulse", "whim"},
	"competitive":   {"compete", "win", "challenge", "beat", "race", "contest"},
	"collaborative": {"team", "together", "collaborate", "cooperate", "group", "partnership"},
}

var hobbyCues = map[string][]string{
	"climbing":    {"climb", "boulder", "rock", "mountain", "rappel"},
	"hiking":      {"hike", "trail", "trek", "summit", "backpack"},
	"cooking":     {"cook", "recipe", "food", "sushi", "bake", "chef", "kitchen"},
	"photography": {"photo", "camera", "picture", "lens", "shoot", "portrait"},
	"gardening":   {"garden", "plant", "grow", "vegetable", "flower", "soil"},
	"writing":     {"write", "story", "book", "novel", "blog", "journal", "poem"},
	"coffee":      {"coffee", "brew", "roast", "espresso", "latte", "barista"},
	"music":       {"guitar", "piano", "sing", "violin", "band", "concert", "song"},
	"running":     {"run", "marathon", "jog", "sprint", "training", "race"},
	"reading":     {"read", "book", "novel", "library", "literature"},
	"gaming":      {"game", "play", "video", "console", "pc", "mobile"},
	"coding":      {"code", "program", "software", "debug", "compiler"},
	"fitness":     {"gym", "workout", "exercise", "fitness", "strength", "cardio"},
	"travel":      {"travel", "trip", "vacation", "visit", "explore", "journey"},
}

var styleCues = map[string][]string{
	"enthusiastic": {"!", "amazing", "awesome", "fantastic", "love", "excited"},
	"thoughtful":   {"think", "consider", "reflect", "ponder", "contemplate"},
	"direct":       {"exactly", "precisely", "clearly", "simply", "straightforward"},
	"empathetic":   {"understand", "feel", "relate", "empathy", "sorry", "care"},
	"humorous":     {"haha", "funny", "joke", "laugh", "amusing", "hilarious"},
	"inquisitive":  {"?", "why", "how", "what", "when", "where", "curious"},
}
