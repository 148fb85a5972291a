// Package categorize assigns each transaction a final category and
// transaction type. It combines three signals in fixed precedence: user
// rules, structural type detection, and a dual-score reconciliation of the
// merchant/keyword-derived category against the CSV's own category column.
package categorize

import (
	"strings"

	"github.com/banksift/banksift/internal/ledger"
)

type keywordStrength int

const (
	weak keywordStrength = iota
	strong
)

type keywordRule struct {
	category string
	strength keywordStrength
	keywords []string
}

// keywordRules is scanned in order. Within one group, the first keyword hit
// wins and stops scanning that group, so a group contributes at most one
// match no matter how many of its keywords appear.
var keywordRules = []keywordRule{
	{category: "Dining", strength: strong, keywords: []string{
		"RESTAURANT", "DINER", "KITCHEN", "BAKERY", "CAFE", "COFFEE",
		"STEAKHOUSE", "SEAFOOD", "SUSHI", "RAMEN", "POKE", "BISTRO",
		"EATERY", "CREAMERY", "GELATO", "ICE CREAM", "PIZZERIA",
	}},
	{category: "Dining", strength: weak, keywords: []string{
		"FOOD", "GRILL", "PIZZA", "BURGER", "TACO", "BBQ", "DELI",
		"CHICKEN", "WING", "DONUT", "CURRY", "NOODLE", "BAR",
		"MEXICAN", "THAI", "CHINESE", "JAPANESE", "INDIAN", "ITALIAN",
		"KOREAN", "VIETNAMESE", "MEDITERRANEAN", "GREEK",
		"SANDWICH", "SUB", "LOBSTER", "CRAB", "FISH", "STEAK",
		"WAFFLE", "PANCAKE", "BRUNCH", "CANTINA", "TAVERN", "PUB",
		"ROTIE", "PANDA EXPRESS", "SOFTEE",
	}},
	{category: "Gas", strength: strong, keywords: []string{
		"GAS STATION", "FUEL", "GASOLINE", "CHEVRON", "SHELL",
		"EXXON", "MOBIL", "MARATHON", "SUNOCO", "VALERO", "CITGO",
		"SINCLAIR", "CONOCO", "PHILLIPS 66",
	}},
	{category: "Gas", strength: weak, keywords: []string{
		"PARKING", "PARKSMART", "PARKINGSPOT", "PARKING SPOT",
		"ALON", "MURPHY", "BOWLIN", "APRO LLC",
	}},
	{category: "Groceries", strength: strong, keywords: []string{
		"GROCERY", "GROCER", "SUPERMARKET", "SPROUTS",
		"SAFEWAY", "PUBLIX", "ALBERTSONS", "FOOD LION",
		"PIGGLY", "HEB ", "H-E-B", "MEIJER",
	}},
	{category: "Groceries", strength: weak, keywords: []string{
		"MARKET", "FARMERS", "ORGANIC", "PRODUCE", "FRESH",
		"INSTACART",
	}},
	{category: "Entertainment", strength: strong, keywords: []string{
		"CINEMA", "THEATER", "THEATRE", "BOWLING", "BOWLERO",
		"ARCADE", "MUSEUM", "AMUSEMENT", "FANDANGO",
		"PLAYSTATION", "XBOX", "NINTENDO", "STEAM",
	}},
	{category: "Entertainment", strength: weak, keywords: []string{
		"SIX FLAGS", "SIXFLAGS", "AMC ", "REGAL", "IMAX", "TOPGOLF",
		"DAVE & BUSTER", "DAVE AND BUSTER", "KIDDIE RIDES",
		"KIDSPACE", "FUN ", "PRIME VIDEO", "FREETIME",
	}},
	{category: "Healthcare", strength: strong, keywords: []string{
		"PHARMACY", "MEDICAL", "DENTAL", "DOCTOR", "HOSPITAL",
		"CLINIC", "URGENT CARE", "OPTOMETRIST", "DERMATOLOG",
	}},
	{category: "Healthcare", strength: weak, keywords: []string{
		"HEALTH", "RX", "PRESCRIPTION", "VISION", "LAB",
		"WALGREENS", "CVS",
	}},
	{category: "Insurance", strength: strong, keywords: []string{
		"INSURANCE", "GEICO", "STATE FARM", "ALLSTATE",
		"PROGRESSIVE", "USAA", "LIBERTY MUTUAL", "FARMERS INS",
	}},
	{category: "Personal Care", strength: strong, keywords: []string{
		"SALON", "BARBER", "SPA ", "NAIL", "BEAUTY", "HAIR",
		"SUPERCUTS", "GREAT CLIPS", "WAXING",
	}},
	{category: "Personal Care", strength: weak, keywords: []string{
		"SKIN", "BOUTIQUE", "COSMETIC",
	}},
	{category: "Home Improvement", strength: strong, keywords: []string{
		"HARDWARE", "LUMBER", "PLUMBING", "HOME DEPOT", "HOMEDEPOT",
		"LOWES", "LOWE'S", "ACE HARDWARE",
	}},
	{category: "Education", strength: strong, keywords: []string{
		"UNIVERSITY", "COLLEGE", "SCHOOL", "TUITION", "TEXTBOOK",
		"ACADEMY", "LEARNING",
	}},
	{category: "Pets", strength: strong, keywords: []string{
		"PETCO", "PETSMART", "VET ", "VETERINAR", "PET SUPPLIES",
		"PET FOOD",
	}},
	{category: "Travel", strength: strong, keywords: []string{
		"HOTEL", "MOTEL", "INN ", "AIRBNB", "VRBO", "AIRLINES",
		"AIRLINE", "FLIGHT", "RESORT", "LODGE",
	}},
	{category: "Travel", strength: weak, keywords: []string{
		"RENTAL CAR", "HERTZ", "ENTERPRISE RENT", "AVIS",
		"EXPEDIA", "BOOKING.COM", "COT*FLT", "COT*HTL", "COT*CAR",
	}},
	{category: "Subscriptions", strength: strong, keywords: []string{
		"NETFLIX", "SPOTIFY", "HULU", "DISNEY+", "DISNEYPLUS",
		"HBO ", "YOUTUBE PREMIUM", "APPLE.COM/BILL",
		"AMAZON PRIME",
	}},
	{category: "Utilities", strength: strong, keywords: []string{
		"ELECTRIC", "POWER", "WATER BILL", "SEWER",
		"NATURAL GAS", "INTERNET", "CABLE",
	}},
	{category: "Transportation", strength: strong, keywords: []string{
		"UBER TRIP", "LYFT", "TAXI", "CAB ", "TRANSIT",
		"METRO", "SUBWAY FARE",
	}},
	{category: "Gifts/Donations", strength: strong, keywords: []string{
		"DONATION", "CHARITY", "FOUNDATION", "NONPROFIT",
		"RED CROSS", "UNITED WAY", "GOODWILL",
	}},
	{category: "Shopping", strength: weak, keywords: []string{
		"KOHLS", "KOHL'S", "HOMEGOODS", "TJ MAXX", "TJMAXX",
		"MARSHALLS", "ROSS ", "NORDSTROM", "MACYS", "MACY'S",
		"BIG 5", "BIG5", "SPORTING GOODS", "ROAD RUNNER SPORTS",
		"RUGGABLE", "NEWEGG", "ETSY", "REI ", "REI.COM",
	}},
}

const (
	strongKeywordConfidence = 0.65
	weakKeywordConfidence   = 0.45
	multiGroupBonus         = 0.10
	keywordConfidenceCap    = 0.80
)

// KeywordCategorize guesses a category from description keywords alone,
// independent of merchant identity. Returns nil when nothing matches.
//
// Per category it counts distinct matching rule groups and remembers the
// strongest strength seen; confidence is 0.65 for strong, 0.45 for weak,
// +0.10 when two or more groups agree, capped at 0.80. Ties between
// categories go to rule-table order.
func KeywordCategorize(description string) *ledger.CategoryScore {
	upper := strings.ToUpper(description)

	type tally struct {
		count    int
		strongest keywordStrength
	}
	matched := map[string]*tally{}
	order := []string{}

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				if t, ok := matched[rule.category]; ok {
					t.count++
					if rule.strength == strong {
						t.strongest = strong
					}
				} else {
					matched[rule.category] = &tally{count: 1, strongest: rule.strength}
					order = append(order, rule.category)
				}
				break
			}
		}
	}

	if len(matched) == 0 {
		return nil
	}

	best := ledger.CategoryScore{}
	for _, category := range order {
		t := matched[category]
		confidence := weakKeywordConfidence
		if t.strongest == strong {
			confidence = strongKeywordConfidence
		}
		if t.count >= 2 {
			confidence += multiGroupBonus
		}
		if confidence > keywordConfidenceCap {
			confidence = keywordConfidenceCap
		}
		if confidence > best.Confidence {
			best = ledger.CategoryScore{Category: category, Confidence: confidence}
		}
	}
	return &best
}
