package concept

// Curated vocabularies for the six taxonomy categories. Matching is
// case-insensitive substring containment against the lowered input.

var colorWords = []string{
	"red", "crimson", "scarlet", "ruby", "maroon", "burgundy",
	"blue", "azure", "navy", "cobalt", "sapphire", "turquoise", "teal",
	"green", "emerald", "jade", "olive", "lime", "mint",
	"yellow", "gold", "golden", "amber", "honey",
	"purple", "violet", "lavender", "magenta", "indigo", "lilac",
	"orange", "coral", "peach", "bronze",
	"pink", "rose", "salmon", "fuchsia",
	"black", "ebony", "charcoal", "onyx",
	"white", "ivory", "pearl", "cream",
	"brown", "chocolate", "mahogany", "tan", "beige",
	"gray", "grey", "silver", "slate",
}

var objectWords = []string{
	"house", "building", "bridge", "castle", "tower", "car", "boat",
	"person", "animal", "bird", "birds", "eagle", "swan", "peacock",
	"butterfly", "deer", "fox", "wolf", "fish", "dolphin", "whale",
	"tree", "trees", "oak", "pine", "palm", "bamboo",
	"flower", "flowers", "tulip", "lily", "daisy", "sunflower", "orchid",
	"grass", "fern", "moss", "vine",
	"mountain", "mountains", "hill", "valley", "canyon", "cliff",
	"ocean", "sea", "lake", "river", "stream", "waterfall",
	"beach", "shore", "island", "forest", "jungle", "meadow", "field", "desert",
	"cave", "rock", "stone", "crystal",
	"sun", "moon", "star", "stars", "planet", "comet", "galaxy",
	"cloud", "clouds", "rainbow", "lightning", "aurora", "sky",
}

var weatherWords = []string{
	"sunny", "cloudy", "rainy", "stormy", "snowy", "foggy", "windy",
	"misty", "frosty",
}

var timeWords = []string{
	"morning", "afternoon", "evening", "night", "dawn", "dusk",
	"sunrise", "sunset", "midnight", "noon",
}

var actionWords = []string{
	"running", "walking", "flying", "swimming", "dancing", "sitting",
	"standing", "jumping", "climbing", "sleeping", "soaring", "diving",
}

var styleWords = []string{
	"realistic", "cartoon", "sketch", "painting", "watercolor",
	"oil painting", "digital art", "anime", "photographic",
}

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "beautiful",
	"happy", "joy", "love", "fantastic", "awesome", "brilliant",
	"perfect", "stunning", "lovely", "peaceful", "serene",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "sad", "angry", "hate",
	"pain", "ugly", "disgusting", "annoying", "frustrating",
	"disappointing", "gloomy", "scary", "dark",
}

var minimalismWords = []string{
	"minimal", "minimalist", "simple", "clean", "sparse",
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "up": {}, "about": {}, "into": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "above": {},
	"below": {}, "between": {}, "among": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "me": {}, "him": {},
	"her": {}, "us": {}, "them": {}, "my": {}, "your": {}, "his": {},
	"its": {}, "our": {}, "their": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "very": {}, "just": {}, "now": {},
	"then": {}, "than": {}, "only": {}, "also": {}, "other": {},
	"many": {}, "some": {}, "time": {}, "way": {}, "well": {},
	"make": {}, "get": {}, "go": {}, "see": {}, "come": {}, "take": {},
	"know": {}, "think": {}, "say": {}, "tell": {}, "look": {}, "want": {},
	"back": {},
}
