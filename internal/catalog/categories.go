package catalog

import "strings"

// CategoryOther is the fallback when no keyword matches.
const CategoryOther = "Other"

// Categorizer assigns ingredients to a category by keyword lookup.
// The table is injected so deployments can swap or extend it without
// touching call sites.
type Categorizer struct {
	// ordered category list keeps matching deterministic
	categories []string
	keywords   map[string][]string
}

// NewCategorizer builds a categorizer from an ordered list of
// category/keyword pairs. Earlier categories win on overlapping keywords.
func NewCategorizer(categories []string, keywords map[string][]string) *Categorizer {
	return &Categorizer{categories: categories, keywords: keywords}
}

// NewDefaultCategorizer returns the stock bakery keyword table.
func NewDefaultCategorizer() *Categorizer {
	return NewCategorizer(defaultCategories, defaultKeywords)
}

// Categories lists the known categories, fallback included.
func (c *Categorizer) Categories() []string {
	out := make([]string, 0, len(c.categories)+1)
	out = append(out, c.categories...)
	return append(out, CategoryOther)
}

// Categorize returns the first category whose keyword list matches the
// ingredient name, or CategoryOther.
func (c *Categorizer) Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, category := range c.categories {
		for _, keyword := range c.keywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return CategoryOther
}

var defaultCategories = []string{
	"Flour & Grains",
	"Dairy & Eggs",
	"Sweeteners",
	"Fats & Oils",
	"Leavening & Additives",
	"Flavorings & Extracts",
	"Fruits & Nuts",
	"Chocolate & Cocoa",
	"Decorating & Toppings",
	"Packaging",
}

var defaultKeywords = map[string][]string{
	"Flour & Grains": {
		"flour", "wheat", "oat", "corn", "rice", "rye", "barley", "semolina",
		"cornmeal", "starch", "cornstarch", "breadcrumb", "bran", "grain",
		"spelt", "buckwheat", "almond flour", "coconut flour",
	},
	"Dairy & Eggs": {
		"milk", "cream", "butter", "egg", "yogurt", "cheese", "sour cream",
		"buttermilk", "whey", "condensed milk", "evaporated milk", "custard",
		"mascarpone", "ricotta", "cream cheese",
	},
	"Sweeteners": {
		"sugar", "honey", "syrup", "molasses", "agave", "stevia",
		"icing sugar", "powdered sugar", "brown sugar", "cane",
		"maple", "treacle", "glucose", "dextrose", "fructose",
	},
	"Fats & Oils": {
		"oil", "shortening", "lard", "margarine", "ghee", "coconut oil",
		"vegetable oil", "canola", "olive oil", "sunflower oil", "spray",
	},
	"Leavening & Additives": {
		"yeast", "baking powder", "baking soda", "bicarbonate", "gelatin",
		"pectin", "agar", "xanthan", "guar gum", "cream of tartar",
		"citric acid", "meringue powder",
	},
	"Flavorings & Extracts": {
		"vanilla", "extract", "cinnamon", "nutmeg", "ginger", "clove",
		"cardamom", "allspice", "anise", "peppermint", "almond extract",
		"lemon zest", "orange zest", "rose water", "coffee", "espresso",
		"matcha", "lavender", "salt", "spice", "seasoning",
	},
	"Fruits & Nuts": {
		"almond", "walnut", "pecan", "hazelnut", "pistachio", "cashew",
		"peanut", "coconut", "macadamia", "raisin", "cranberry", "cherry",
		"blueberry", "strawberry", "raspberry", "apple", "lemon", "orange",
		"lime", "banana", "pineapple", "mango", "peach", "apricot",
		"fig", "date", "currant", "fruit", "nut", "seed", "sesame",
		"poppy", "sunflower seed", "pumpkin seed", "dried",
	},
	"Chocolate & Cocoa": {
		"chocolate", "cocoa", "cacao", "chip", "ganache", "couverture",
		"white chocolate", "dark chocolate", "milk chocolate", "carob",
	},
	"Decorating & Toppings": {
		"sprinkle", "fondant", "food color", "food colour", "gel color",
		"edible", "glitter", "pearl", "dragee", "nonpareil", "icing",
		"frosting", "glaze", "topping", "decoration", "marzipan",
		"gum paste", "lustre", "dust",
	},
	"Packaging": {
		"box", "bag", "wrap", "foil", "parchment", "liner", "cup",
		"cupcake liner", "cake board", "ribbon", "label", "sticker",
		"container", "packaging", "tray",
	},
}
