package sentiment

// Valence lexicon for social/news text, VADER-style. Ratings are mean
// human valence on a -4..+4 scale. This is the general-English subset
// relevant to market chatter; crypto slang lives in crypto_terms.go.
var baseLexicon = map[string]float64{
	"abandon": -1.9, "abandoned": -2.0, "abuse": -3.2, "accomplish": 1.8,
	"achieve": 1.7, "achievement": 2.1, "admire": 2.3, "adopt": 0.9,
	"adoption": 1.2, "advantage": 1.7, "afraid": -2.0, "aggressive": -1.0,
	"agree": 1.5, "alarm": -1.4, "alarming": -1.9, "amazing": 2.8,
	"anger": -2.7, "angry": -2.3, "anxious": -1.9, "appeal": 1.3,
	"approval": 1.8, "approve": 1.8, "attack": -2.1, "attractive": 1.9,
	"avoid": -1.2, "awesome": 3.1, "awful": -2.0, "bad": -2.5,
	"ban": -2.6, "banned": -2.3, "beat": -0.9, "beautiful": 2.9,
	"believe": 1.3, "benefit": 2.0, "best": 3.2, "better": 1.9,
	"big": 0.6, "block": -1.2, "bold": 1.3, "boom": 1.4,
	"boost": 1.7, "bottom": -0.8, "brave": 2.4, "breakthrough": 2.2,
	"brilliant": 2.8, "broke": -1.5, "broken": -1.9, "bust": -1.8,
	"calm": 1.3, "cancel": -1.3, "cancelled": -1.4, "capitulation": -2.4,
	"careful": 1.1, "catastrophe": -3.4, "catastrophic": -3.4, "caution": -0.5,
	"cautious": -0.4, "certain": 1.1, "chaos": -2.7, "cheap": 0.4,
	"cheat": -3.0, "clever": 2.0, "collapse": -2.9, "comfortable": 1.9,
	"concern": -1.2, "concerned": -1.3, "confidence": 2.3, "confident": 2.2,
	"confusion": -1.4, "congratulations": 2.9, "conservative": 0.3, "convince": 1.0,
	"cool": 1.3, "crash": -2.6, "crashed": -2.6, "crazy": -1.4,
	"crime": -2.5, "crisis": -3.1, "critical": -1.4,
	"cut": -1.1, "damage": -2.2, "danger": -2.4, "dangerous": -2.2,
	"dead": -3.3, "debt": -1.9, "decline": -1.6, "defeat": -2.0,
	"delay": -1.3, "delayed": -1.3, "desperate": -2.4, "destroy": -2.8,
	"destroyed": -2.9, "die": -3.0, "difficult": -1.5, "dip": -0.9,
	"disappointed": -2.2, "disappointing": -2.2, "disaster": -3.1, "distrust": -2.2,
	"dominant": 1.0, "doom": -2.9, "doubt": -1.5, "down": -1.2,
	"downgrade": -1.9, "drop": -1.2, "dropped": -1.2, "dump": -1.9,
	"easy": 1.6, "effective": 1.9, "efficient": 1.8, "embarrassing": -2.1,
	"encouraging": 2.0, "enjoy": 2.2, "enthusiasm": 2.3, "enthusiastic": 2.3,
	"epic": 2.2, "evil": -3.4, "excellent": 2.7, "excited": 2.4,
	"excitement": 2.3, "exciting": 2.2, "expensive": -0.9, "explode": -1.0,
	"explosive": 0.4, "fail": -2.5, "failed": -2.3, "failure": -2.6,
	"fake": -2.1, "fall": -1.4, "falling": -1.5, "fantastic": 2.6,
	"favorite": 2.0, "fear": -2.2, "fine": 0.8, "fired": -2.6,
	"flourish": 2.2, "fool": -2.0, "fortune": 2.3, "fraud": -3.6,
	"fraudulent": -3.4, "free": 1.9, "freedom": 2.5, "fresh": 1.3,
	"frustrated": -2.1, "gain": 1.6, "gains": 1.7, "generous": 2.3,
	"genius": 2.8, "gift": 1.9, "glad": 2.0, "gloom": -2.3,
	"good": 1.9, "grand": 2.2, "great": 3.1, "greed": -1.6,
	"greedy": -2.2, "grow": 1.4, "growing": 1.4, "growth": 1.7,
	"halt": -1.4, "happy": 2.7, "hate": -2.7, "headwind": -1.1,
	"healthy": 1.9, "hell": -3.6, "help": 1.7, "helpful": 1.9,
	"hero": 2.6, "high": 1.0, "honest": 2.3, "hope": 1.9,
	"hopeful": 2.0, "horrible": -2.5, "huge": 1.3, "hype": 0.5,
	"ignore": -1.5, "important": 1.2, "impressive": 2.3, "improve": 1.9,
	"improved": 1.9, "improvement": 1.9, "incredible": 2.6, "innovation": 1.8,
	"innovative": 1.9, "insane": -1.7, "inspire": 2.4, "interest": 1.7,
	"interesting": 1.7, "invest": 1.1, "jail": -2.5, "jealous": -2.0,
	"joke": 0.9, "joy": 2.8, "jump": 0.6, "kill": -3.4,
	"killed": -3.4, "lack": -1.4, "lame": -1.8, "launch": 0.9,
	"lawsuit": -1.9, "leader": 1.8, "leading": 1.4, "legendary": 2.4,
	"limit": -0.8, "lose": -2.0, "loser": -2.5, "loses": -1.9,
	"losing": -2.0, "loss": -1.9, "losses": -2.0, "lost": -1.9,
	"love": 3.2, "loved": 2.9, "low": -1.1, "lucky": 2.4,
	"mad": -2.2, "magnificent": 2.9, "massive": 0.8, "mature": 1.3,
	"mess": -1.8, "milestone": 1.8, "miss": -1.0, "missed": -1.2,
	"mistake": -2.1, "momentum": 1.1, "negative": -2.7, "nervous": -1.9,
	"new": 1.1, "nice": 1.8, "opportunity": 1.8, "optimism": 2.2,
	"optimistic": 2.1, "outstanding": 2.7, "overvalued": -1.5, "panic": -2.5,
	"partnership": 1.5, "peak": 1.2, "perfect": 2.7, "plunge": -2.2,
	"plummet": -2.4, "poor": -2.1, "popular": 1.9, "positive": 2.3,
	"powerful": 2.0, "problem": -1.7, "problems": -1.8, "profit": 2.1,
	"profitable": 2.2, "progress": 1.9, "promise": 1.5, "promising": 1.9,
	"prosper": 2.4, "prosperity": 2.5, "protect": 1.4, "proud": 2.4,
	"pump": 0.7, "rally": 1.6, "rebound": 1.4, "record": 1.2,
	"recover": 1.5, "recovery": 1.7, "regret": -2.3, "reject": -1.8,
	"rejected": -1.9, "reliable": 2.0, "relief": 1.8, "resilient": 1.8,
	"revolutionary": 2.1, "reward": 2.1, "rich": 2.3, "rise": 1.3,
	"rising": 1.3, "risk": -1.1, "risky": -1.4, "robust": 1.6,
	"rocket": 1.4, "sad": -2.1, "safe": 1.8, "scam": -3.4,
	"scandal": -2.6, "scared": -2.2, "secure": 1.7, "sell": -0.5,
	"selloff": -1.9, "serious": -0.9, "shock": -1.9, "shocking": -1.9,
	"short": -0.4, "skeptical": -1.3, "slow": -1.0, "smart": 2.1,
	"solid": 1.5, "soar": 2.0, "soaring": 2.1, "sorry": -0.9,
	"stable": 1.4, "steal": -2.7, "stolen": -2.6, "strong": 2.3,
	"struggle": -1.9, "struggling": -2.0, "stupid": -2.5, "succeed": 2.2,
	"success": 2.7, "successful": 2.8, "suck": -2.3, "sucks": -2.2,
	"super": 2.9, "support": 1.7, "surge": 1.8, "surging": 1.8,
	"surprise": 1.1, "suspicious": -1.7, "tank": -1.7, "tanked": -2.0,
	"terrible": -2.1, "terrific": 2.7, "threat": -2.2, "thrilled": 2.7,
	"top": 1.3, "tough": -1.1, "tragedy": -3.3, "trouble": -2.0,
	"trust": 2.1, "trusted": 2.2, "ugly": -2.3, "uncertain": -1.3,
	"uncertainty": -1.4, "undervalued": 0.8, "unfair": -2.3, "unhappy": -2.2,
	"unstable": -1.7, "up": 0.8, "upgrade": 1.6, "upset": -1.9,
	"useless": -1.9, "value": 1.4, "valuable": 2.1, "vibrant": 1.9,
	"victory": 2.6, "volatile": -1.2, "war": -2.9, "warn": -1.5,
	"warning": -1.7, "weak": -1.9, "wealth": 2.2, "welcome": 1.9,
	"win": 2.8, "winner": 2.8, "winning": 2.4, "wonderful": 2.7,
	"worry": -1.9, "worried": -1.9, "worse": -2.1, "worst": -3.1,
	"worthless": -2.7, "wow": 2.1, "wrong": -2.1,
}

// Degree modifiers scale the valence of the following sentiment word.
var boosters = map[string]float64{
	"absolutely": boosterIncr, "amazingly": boosterIncr, "completely": boosterIncr,
	"considerably": boosterIncr, "decidedly": boosterIncr, "deeply": boosterIncr,
	"enormously": boosterIncr, "entirely": boosterIncr, "especially": boosterIncr,
	"exceptionally": boosterIncr, "extremely": boosterIncr, "fully": boosterIncr,
	"greatly": boosterIncr, "highly": boosterIncr, "hugely": boosterIncr,
	"incredibly": boosterIncr, "insanely": boosterIncr, "majorly": boosterIncr,
	"really": boosterIncr, "remarkably": boosterIncr, "so": boosterIncr,
	"substantially": boosterIncr, "thoroughly": boosterIncr, "totally": boosterIncr,
	"tremendously": boosterIncr, "unbelievably": boosterIncr, "utterly": boosterIncr,
	"very": boosterIncr,
	"almost": boosterDecr, "barely": boosterDecr, "hardly": boosterDecr,
	"kind of": boosterDecr, "kinda": boosterDecr, "less": boosterDecr,
	"little": boosterDecr, "marginally": boosterDecr, "occasionally": boosterDecr,
	"partly": boosterDecr, "scarcely": boosterDecr, "slightly": boosterDecr,
	"somewhat": boosterDecr, "sort of": boosterDecr, "sorta": boosterDecr,
}

// Negation tokens flip and dampen the valence of a nearby sentiment word.
var negations = map[string]struct{}{
	"aint": {}, "arent": {}, "cannot": {}, "cant": {}, "couldnt": {},
	"didnt": {}, "doesnt": {}, "dont": {}, "hadnt": {}, "hasnt": {},
	"havent": {}, "isnt": {}, "mightnt": {}, "mustnt": {}, "neither": {},
	"never": {}, "no": {}, "nobody": {}, "none": {}, "nope": {},
	"nor": {}, "not": {}, "nothing": {}, "nowhere": {}, "shouldnt": {},
	"wasnt": {}, "werent": {}, "without": {}, "wont": {}, "wouldnt": {},
	"ain't": {}, "aren't": {}, "can't": {}, "couldn't": {}, "didn't": {},
	"doesn't": {}, "don't": {}, "hadn't": {}, "hasn't": {}, "haven't": {},
	"isn't": {}, "mightn't": {}, "mustn't": {}, "shouldn't": {}, "wasn't": {},
	"weren't": {}, "won't": {}, "wouldn't": {},
}
