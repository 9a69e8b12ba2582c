package service

import "github.com/bbqmenu/bbq-menu-ai/backend/internal/units"

func ing(name string, amount float64, unit string, price int64) GeneratedIngredient {
	return GeneratedIngredient{Name: name, Amount: flexNumber(amount), Unit: unit, Price: &price}
}

type mockRecipe struct {
	name, description string
	prep, cook        int
	difficulty        string
	ingredients       []GeneratedIngredient
	instructions      []string
	imageQuery        string
}

var mockMenus = map[units.Locale][]mockRecipe{
	units.English: {
		{
			name: "Spicy BBQ Chicken Wings", description: "Crispy on the outside, tender on the inside, coated with a spicy glaze",
			prep: 15, cook: 25, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("Chicken wings", 800, "g", 1500), ing("Minced garlic", 20, "g", 50),
				ing("Soy sauce", 30, "ml", 30), ing("Honey", 20, "ml", 80), ing("Chili powder", 2, "tsp", 20),
			},
			instructions: []string{
				"Pat the wings dry and score each one",
				"Mix garlic, soy sauce, honey and chili powder into a marinade",
				"Marinate the wings for at least 2 hours",
				"Preheat the grill to 200°C",
				"Grill 10-12 minutes per side until golden and crispy",
			},
			imageQuery: "grilled chicken wings",
		},
		{
			name: "Garlic Butter Steak", description: "Juicy ribeye finished with garlic herb butter",
			prep: 10, cook: 15, difficulty: "medium",
			ingredients: []GeneratedIngredient{
				ing("Ribeye steak", 600, "g", 4500), ing("Butter", 50, "g", 200),
				ing("Garlic", 4, "clove", 30), ing("Fresh rosemary", 2, "sprig", 50), ing("Salt and black pepper", 1, "tsp", 20),
			},
			instructions: []string{
				"Take the steak out of the fridge 30 minutes before grilling",
				"Season both sides with salt and pepper",
				"Preheat the grill to high heat",
				"Grill 4-5 minutes per side for medium-rare",
				"Top with garlic herb butter and rest 5 minutes",
			},
			imageQuery: "grilled steak garlic butter",
		},
		{
			name: "Grilled Vegetable Platter", description: "Colorful charred vegetables, the classic BBQ side",
			prep: 15, cook: 20, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("Bell peppers", 300, "g", 400), ing("Zucchini", 200, "g", 200),
				ing("Eggplant", 200, "g", 150), ing("Olive oil", 40, "ml", 150), ing("Italian herbs", 2, "tsp", 50),
			},
			instructions: []string{
				"Cut the vegetables into even pieces",
				"Toss with olive oil and herbs",
				"Preheat the grill to medium-high heat",
				"Grill 5-7 minutes per side until lightly charred",
			},
			imageQuery: "grilled vegetables platter",
		},
		{
			name: "Honey Glazed Pork Chops", description: "Tender chops with a caramelized honey glaze",
			prep: 20, cook: 30, difficulty: "medium",
			ingredients: []GeneratedIngredient{
				ing("Pork chops", 800, "g", 2000), ing("Honey", 60, "ml", 200),
				ing("Soy sauce", 40, "ml", 50), ing("Minced ginger", 15, "g", 30), ing("Five spice powder", 1, "tsp", 30),
			},
			instructions: []string{
				"Mix honey, soy sauce, ginger and five spice",
				"Marinate the chops for 3-4 hours",
				"Preheat the grill to 180°C",
				"Grill 12-15 minutes per side",
				"Brush with the remaining marinade during the last 5 minutes",
			},
			imageQuery: "honey glazed pork chops",
		},
	},
	units.German: {
		{
			name: "Würzige BBQ Hähnchenflügel", description: "Außen knusprig, innen zart, mit würziger Glasur",
			prep: 15, cook: 25, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("Hähnchenflügel", 800, "g", 1500), ing("Gehackter Knoblauch", 20, "g", 50),
				ing("Sojasauce", 30, "ml", 30), ing("Honig", 20, "ml", 80), ing("Chilipulver", 2, "tsp", 20),
			},
			instructions: []string{
				"Flügel trocken tupfen und einritzen",
				"Knoblauch, Sojasauce, Honig und Chilipulver mischen",
				"Flügel mindestens 2 Stunden marinieren",
				"Grill auf 200°C vorheizen",
				"Pro Seite 10-12 Minuten grillen",
			},
			imageQuery: "grilled chicken wings",
		},
		{
			name: "Knoblauchbutter-Steak", description: "Saftiges Ribeye mit Kräuterbutter",
			prep: 10, cook: 15, difficulty: "medium",
			ingredients: []GeneratedIngredient{
				ing("Ribeye-Steak", 600, "g", 4500), ing("Butter", 50, "g", 200),
				ing("Knoblauch", 4, "clove", 30), ing("Frischer Rosmarin", 2, "sprig", 50), ing("Salz und Pfeffer", 1, "tsp", 20),
			},
			instructions: []string{
				"Steak 30 Minuten vorher aus dem Kühlschrank nehmen",
				"Beide Seiten würzen",
				"Grill auf hohe Hitze vorheizen",
				"Pro Seite 4-5 Minuten grillen",
				"Mit Kräuterbutter 5 Minuten ruhen lassen",
			},
			imageQuery: "grilled steak garlic butter",
		},
		{
			name: "Gegrillte Gemüseplatte", description: "Buntes Grillgemüse als Beilage",
			prep: 15, cook: 20, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("Paprika", 300, "g", 400), ing("Zucchini", 200, "g", 200),
				ing("Aubergine", 200, "g", 150), ing("Olivenöl", 40, "ml", 150), ing("Italienische Kräuter", 2, "tsp", 50),
			},
			instructions: []string{
				"Gemüse in gleich große Stücke schneiden",
				"Mit Olivenöl und Kräutern mischen",
				"Grill auf mittlere bis hohe Hitze vorheizen",
				"Pro Seite 5-7 Minuten grillen",
			},
			imageQuery: "grilled vegetables platter",
		},
		{
			name: "Thüringer Rostbratwurst", description: "Klassische Bratwurst mit Senf vom Rost",
			prep: 5, cook: 15, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("Rostbratwurst", 8, "piece", 1200), ing("Mittelscharfer Senf", 60, "ml", 120),
				ing("Brötchen", 8, "piece", 300),
			},
			instructions: []string{
				"Grill auf mittlere Hitze (ca. 180°C) vorheizen",
				"Würste rundum 12-15 Minuten grillen, regelmäßig wenden",
				"Im Brötchen mit Senf servieren",
			},
			imageQuery: "bratwurst grill",
		},
	},
	units.Chinese: {
		{
			name: "香辣烤鸡翅", description: "外酥里嫩的烤鸡翅，配以秘制香辣酱",
			prep: 15, cook: 25, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("鸡翅", 800, "g", 1500), ing("蒜末", 20, "g", 50),
				ing("生抽", 30, "ml", 30), ing("蜂蜜", 20, "ml", 80), ing("辣椒粉", 2, "tsp", 20),
			},
			instructions: []string{
				"将鸡翅洗净沥干，划几刀便于入味",
				"混合蒜末、生抽、蜂蜜和辣椒粉制成腌料",
				"腌制至少2小时",
				"预热烤架至200°C",
				"每面烤10-12分钟直至金黄酥脆",
			},
			imageQuery: "grilled chicken wings",
		},
		{
			name: "蒜香烤牛排", description: "嫩滑多汁的牛排，配以蒜香黄油",
			prep: 10, cook: 15, difficulty: "medium",
			ingredients: []GeneratedIngredient{
				ing("牛排", 600, "g", 4500), ing("黄油", 50, "g", 200),
				ing("大蒜", 4, "clove", 30), ing("迷迭香", 2, "sprig", 50), ing("盐和黑胡椒", 1, "tsp", 20),
			},
			instructions: []string{
				"牛排提前30分钟从冰箱取出回温",
				"两面撒上盐和黑胡椒",
				"将烤架预热至高温",
				"每面烤4-5分钟",
				"淋上蒜香黄油，静置5分钟",
			},
			imageQuery: "grilled steak garlic butter",
		},
		{
			name: "烤蔬菜拼盘", description: "色彩缤纷的烤蔬菜，完美的烧烤配菜",
			prep: 15, cook: 20, difficulty: "easy",
			ingredients: []GeneratedIngredient{
				ing("彩椒", 300, "g", 400), ing("西葫芦", 200, "g", 200),
				ing("茄子", 200, "g", 150), ing("橄榄油", 40, "ml", 150), ing("意大利香草", 2, "tsp", 50),
			},
			instructions: []string{
				"将蔬菜切成均匀的大块",
				"用橄榄油和香草拌匀",
				"预热烤架至中高温",
				"每面烤5-7分钟直至微焦",
			},
			imageQuery: "grilled vegetables platter",
		},
		{
			name: "蜜汁烤猪排", description: "外焦里嫩，蜜汁甜香",
			prep: 20, cook: 30, difficulty: "medium",
			ingredients: []GeneratedIngredient{
				ing("猪排", 800, "g", 2000), ing("蜂蜜", 60, "ml", 200),
				ing("酱油", 40, "ml", 50), ing("姜末", 15, "g", 30), ing("五香粉", 1, "tsp", 30),
			},
			instructions: []string{
				"混合蜂蜜、酱油、姜末和五香粉",
				"猪排腌制3-4小时",
				"预热烤架至180°C",
				"每面烤12-15分钟",
				"最后5分钟刷上剩余腌料",
			},
			imageQuery: "honey glazed pork chops",
		},
	},
}

// MockRecipes returns canned recipes used in development when the AI
// endpoint is unreachable.
func MockRecipes(language string, servings int) []GeneratedRecipe {
	menu := mockMenus[units.ParseLocale(language)]
	out := make([]GeneratedRecipe, 0, len(menu))
	for _, m := range menu {
		out = append(out, GeneratedRecipe{
			Name:         m.name,
			Description:  m.description,
			PrepTime:     flexNumber(m.prep),
			CookTime:     flexNumber(m.cook),
			Difficulty:   m.difficulty,
			Servings:     flexNumber(servings),
			Ingredients:  append([]GeneratedIngredient(nil), m.ingredients...),
			Instructions: append([]string(nil), m.instructions...),
			ImageQuery:   m.imageQuery,
		})
	}
	return out
}
