package sentiment

// Crypto slang overrides layered on top of the base lexicon. Multi-word
// phrases are folded into single tokens before lookup (see foldPhrases),
// so they are keyed here with underscores.
var cryptoPositive = map[string]float64{
	"bullish":       3.0,
	"bull_market":   3.0,
	"bull_run":      3.0,
	"hodl":          1.8,
	"to_the_moon":   3.5,
	"mooning":       3.2,
	"diamond_hands": 2.5,
	"green_candle":  2.0,
	"all_time_high": 2.8,
	"ath":           2.5,
	"dca":           1.5,
	"staking":       1.8,
	"yield_farming": 1.5,
	"airdrop":       2.0,
	"fomo":          0.5,
	"altseason":     2.0,
	"nft_boom":      2.2,
	"metaverse":     1.2,
	"web3":          1.5,
	"defi":          1.5,
}

var cryptoNegative = map[string]float64{
	"bearish":         -3.0,
	"bear_market":     -3.0,
	"bear_trap":       -2.0,
	"paper_hands":     -2.0,
	"panic_sell":      -3.0,
	"red_candle":      -2.0,
	"rug_pull":        -4.0,
	"pump_and_dump":   -3.5,
	"ponzi":           -4.0,
	"scamcoin":        -4.0,
	"shitcoin":        -3.0,
	"bagholder":       -2.0,
	"dead_cat_bounce": -1.5,
	"fud":             -2.5,
	"rekt":            -3.5,
	"dumping":         -2.5,
	"flash_crash":     -3.0,
	"correction":      -1.5,
	"liquidation":     -2.5,
	"whale_dump":      -2.8,
}
