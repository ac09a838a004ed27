package mood

import (
	"slices"
	"strings"

	"yumexpress-be/internal/restaurant"
)

// foodRules derive tags from words in a menu item's name, category or description.
var foodRules = []struct {
	keywords []string
	tags     []string
}{
	{[]string{"coffee", "latte", "espresso", "cappuccino", "mocha", "americano", "macchiato", "flat white", "cold brew"}, []string{"coffee", "warm"}},
	{[]string{"cold", "iced", "chilled", "soft drink", "cola"}, []string{"cold"}},
	{[]string{"ice cream", "ice-cream", "sundae", "gelato", "kulfi"}, []string{"ice-cream", "sweet", "cold"}},
	{[]string{"brownie", "cake", "shake", "lassi", "dessert", "pastry", "gulab", "halwa", "chocolate"}, []string{"sweet", "dessert"}},
	{[]string{"fruit", "mango", "berry", "apple", "banana"}, []string{"fruit"}},
	{[]string{"soup", "broth", "shorba"}, []string{"soup", "light", "warm"}},
	{[]string{"salad", "sprout", "grilled veg"}, []string{"healthy", "light"}},
	{[]string{"pizza", "burger", "sandwich", "lasagna", "cheese"}, []string{"cheesy", "comfort"}},
	{[]string{"fries", "nugget", "onion ring", "spring roll", "fried", "pakora", "manchurian"}, []string{"fried", "crispy"}},
	{[]string{"chilli", "chili", "spicy", "masala", "arrabiata", "vindaloo", "schezwan", "samosa", "vada", "tikki"}, []string{"spicy", "strong-flavor"}},
	{[]string{"rice", "biryani", "pulao"}, []string{"rice"}},
	{[]string{"naan", "roti", "bread", "pav", "paratha", "kulcha"}, []string{"bread"}},
	{[]string{"veg", "paneer", "dal", "aloo", "gobi", "chole"}, []string{"veg"}},
	{[]string{"khichdi", "curd", "idli", "steamed", "plain"}, []string{"mild", "simple"}},
	{[]string{"fusion", "special", "signature", "chef"}, []string{"fusion", "chef-special", "unique"}},
}

// TagMenuItem derives canonical tags for a menu item and picks the emotion
// whose tag list overlaps most with them. Items without any match become
// neutral and "regular".
func TagMenuItem(name, category, description string) (Emotion, []string) {
	text := strings.ToLower(strings.Join([]string{name, category, description}, " "))

	var raw []string
	for _, rule := range foodRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				raw = append(raw, rule.tags...)
				break
			}
		}
	}

	tags := restaurant.NormalizeTags(raw)
	if slices.Contains(tags, "cold") {
		tags = slices.DeleteFunc(tags, func(t string) bool { return t == "warm" })
	}
	if len(tags) == 0 {
		return Neutral, []string{"regular"}
	}

	best, bestScore := Neutral, 0
	for _, e := range Emotions {
		score := 0
		for _, t := range tagTable[e] {
			if slices.Contains(tags, t) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = e, score
		}
	}
	return best, tags
}
