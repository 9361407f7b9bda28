/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package assign

import "slices"

// Rounds is the length of the theme cycle.
const Rounds = 10

// Theme pairs a crew word pool with the impostor pool for one round.
type Theme struct {
	Label    string   `json:"label"`
	Crew     []string `json:"crew"`
	Impostor []string `json:"impostor"`
}

// Pool returns the word pool for role.
func (t Theme) Pool(role Role) []string {
	if role == Impostor {
		return t.Impostor
	}

	return t.Crew
}

func (t Theme) clone() Theme {
	t.Crew = slices.Clone(t.Crew)
	t.Impostor = slices.Clone(t.Impostor)

	return t
}

var themes = [Rounds]Theme{
	{
		Label:    "Flowers vs Grasses",
		Crew:     []string{"rose", "tulip", "jasmine", "daisy", "lily", "orchid", "lavender", "hibiscus", "iris", "lotus", "daffodil", "peony", "poppy", "sunflower", "marigold"},
		Impostor: []string{"bamboo", "zoysia", "bentgrass", "fescue", "bluegrass", "bermuda", "ryegrass", "pampas", "reed", "switchgrass"},
	},
	{
		Label:    "Fruits vs Vegetables",
		Crew:     []string{"apple", "banana", "orange", "mango", "grape", "pineapple", "papaya", "strawberry", "watermelon", "kiwi", "pear", "peach", "cherry", "plum", "apricot"},
		Impostor: []string{"carrot", "potato", "tomato", "cucumber", "lettuce", "spinach", "broccoli", "cabbage", "eggplant", "pumpkin"},
	},
	{
		Label:    "Mammals vs Birds",
		Crew:     []string{"lion", "tiger", "elephant", "giraffe", "zebra", "kangaroo", "whale", "bear", "wolf", "fox", "deer", "rabbit", "horse", "camel", "panda"},
		Impostor: []string{"eagle", "sparrow", "pigeon", "parrot", "owl", "flamingo", "penguin", "swan", "goose", "peacock"},
	},
	{
		Label:    "Sea vs Freshwater Animals",
		Crew:     []string{"shark", "tuna", "mackerel", "sardine", "swordfish", "crab", "lobster", "shrimp", "jellyfish", "starfish", "seahorse", "manta ray", "clam", "oyster", "mussel", "scallop"},
		Impostor: []string{"carp", "catfish", "tilapia", "trout", "pike", "perch", "bass", "goldfish", "eel", "crayfish"},
	},
	{
		Label:    "Kitchen Utensils vs Kitchen Electronics",
		Crew:     []string{"spatula", "whisk", "ladle", "tongs", "peeler", "grater", "colander", "rolling pin", "can opener", "measuring cup", "sieve", "zester", "skimmer", "pizza cutter", "pastry brush", "garlic press"},
		Impostor: []string{"blender", "toaster", "microwave", "mixer", "food processor", "air fryer", "rice cooker", "kettle", "coffee maker", "oven"},
	},
	{
		Label:    "Clothing vs Accessories",
		Crew:     []string{"shirt", "pants", "dress", "skirt", "jacket", "coat", "sweater", "t-shirt", "jeans", "shorts", "blouse", "hoodie", "suit", "socks", "cardigan", "leggings"},
		Impostor: []string{"belt", "tie", "scarf", "hat", "cap", "gloves", "earrings", "necklace", "bracelet", "watch"},
	},
	{
		Label:    "Vehicles vs Household Items",
		Crew:     []string{"sedan", "suv", "hatchback", "coupe", "convertible", "pickup", "limousine", "minivan", "wagon", "sports car", "roadster", "crossover", "jeep", "truck"},
		Impostor: []string{"sofa", "lamp", "vacuum", "mirror", "chair", "table", "bookshelf", "cabinet", "bed", "dresser"},
	},
	{
		Label:    "String vs Percussion Instruments",
		Crew:     []string{"guitar", "violin", "viola", "cello", "double bass", "harp", "banjo", "mandolin", "ukulele", "sitar", "lute", "zither", "lyre", "erhu"},
		Impostor: []string{"drum", "snare", "cymbal", "tambourine", "maracas", "triangle", "xylophone", "bongos", "conga", "timpani"},
	},
	{
		Label:    "Desserts vs Fast Food",
		Crew:     []string{"cake", "pie", "ice cream", "pudding", "brownie", "cupcake", "tart", "cheesecake", "donut", "cookie", "trifle", "mousse", "custard", "flan", "gelato"},
		Impostor: []string{"burger", "fries", "pizza", "hotdog", "fried chicken", "taco", "kebab", "shawarma", "nuggets", "sandwich"},
	},
	{
		Label:    "Office Items vs School Supplies",
		Crew:     []string{"stapler", "paperclip", "binder", "folder", "notepad", "printer", "scanner", "shredder", "whiteboard", "marker", "highlighter", "ruler", "tape dispenser", "envelope", "calculator", "desk lamp"},
		Impostor: []string{"pencil", "pen", "eraser", "notebook", "backpack", "glue", "scissors", "protractor", "compass", "worksheet"},
	},
}

// ThemeFor returns a copy of the theme for a 1-indexed round, cycling every
// ten rounds.
func ThemeFor(round int) Theme {
	i := (round - 1) % Rounds
	if i < 0 {
		i += Rounds
	}

	return themes[i].clone()
}

// Themes returns a copy of the theme table in round order.
func Themes() []Theme {
	out := make([]Theme, Rounds)
	for i, t := range themes {
		out[i] = t.clone()
	}

	return out
}
