package knowledge

// Corpus returns the full static knowledge base. Content is hand-written
// and embedded once at startup; the returned slice must not be mutated.
func Corpus() []Item {
	return []Item{
		// Baking & Pastry
		{
			ID:          "baking_001",
			Title:       "Fluffy Pancake Technique",
			Content:     "To make fluffy pancakes, separate egg whites and beat until stiff peaks form. Fold into batter gently. Use buttermilk and let batter rest for 10 minutes. Cook on medium heat until bubbles form on surface. The key is gentle folding to preserve air bubbles.",
			Category:    "baking",
			Difficulty:  "beginner",
			Cuisine:     "western",
			Keywords:    []string{"pancakes", "fluffy", "eggs", "buttermilk", "batter", "folding", "air bubbles"},
			CookingTime: "15-20 minutes",
			Equipment:   []string{"mixing bowl", "whisk", "frying pan", "spatula"},
			Dietary:     DietaryInfo{"vegetarian": true, "gluten_free": false, "dairy_free": false},
		},
		{
			ID:          "baking_002",
			Title:       "Perfect Pie Crust",
			Content:     "Perfect pie crust: Use cold butter and ice water. Don't overwork the dough. Let it rest in the fridge for at least 30 minutes. Roll out on a floured surface, fold into quarters for transfer. Blind bake with weights for 15 minutes before filling.",
			Category:    "baking",
			Difficulty:  "intermediate",
			Cuisine:     "western",
			Keywords:    []string{"pie crust", "cold butter", "ice water", "dough", "resting", "blind bake"},
			CookingTime: "1-2 hours",
			Equipment:   []string{"rolling pin", "pie dish", "pastry cutter"},
			Dietary:     DietaryInfo{"vegetarian": true, "gluten_free": false, "dairy_free": false},
		},
		{
			ID:          "baking_003",
			Title:       "Sourdough Bread Method",
			Content:     "Sourdough bread: Maintain starter at room temperature, feed daily with equal parts flour and water. Autolyse dough for 30 minutes before adding salt. Stretch and fold every 30 minutes for 3 hours. Bulk ferment until 50% rise, then shape and cold proof overnight.",
			Category:    "baking",
			Difficulty:  "advanced",
			Cuisine:     "western",
			Keywords:    []string{"sourdough", "starter", "autolyse", "stretch and fold", "bulk ferment", "cold proof"},
			CookingTime: "24-48 hours",
			Equipment:   []string{"dutch oven", "banneton", "bench scraper"},
			Dietary:     DietaryInfo{"vegetarian": true, "vegan": true, "gluten_free": false, "dairy_free": true},
		},

		// Cooking Techniques
		{
			ID:          "technique_001",
			Title:       "Sous Vide Cooking",
			Content:     "Sous vide cooking: Vacuum seal food in bags, cook in precise temperature water bath. Beef at 130°F for medium-rare, chicken at 165°F for safety. Finish with high-heat sear for texture. Perfect for consistent results and meal prep.",
			Category:    "techniques",
			Difficulty:  "intermediate",
			Cuisine:     "modern",
			Keywords:    []string{"sous vide", "vacuum seal", "temperature control", "searing", "consistency"},
			CookingTime: "1-24 hours",
			Equipment:   []string{"sous vide machine", "vacuum sealer", "water bath", "searing pan"},
			Dietary:     DietaryInfo{"vegetarian": true, "gluten_free": true, "dairy_free": true},
		},
		{
			ID:          "technique_002",
			Title:       "Reverse Searing Method",
			Content:     "Reverse searing: Cook meat in low oven (200-250°F) until internal temperature is 10-15°F below target. Rest for 10 minutes, then sear on high heat for crust. Results in even doneness and perfect crust without overcooking.",
			Category:    "techniques",
			Difficulty:  "intermediate",
			Cuisine:     "western",
			Keywords:    []string{"reverse sear", "low temperature", "even cooking", "crust", "resting"},
			CookingTime: "1-2 hours",
			Equipment:   []string{"oven", "cast iron pan", "meat thermometer"},
			Dietary:     DietaryInfo{"gluten_free": true, "dairy_free": true},
		},
		{
			ID:          "technique_003",
			Title:       "Smoking Fundamentals",
			Content:     "Smoking techniques: Cold smoking for flavor (below 90°F), hot smoking for cooking (165-185°F). Use wood chips soaked in water. Control airflow for consistent smoke. Different woods impart unique flavors: hickory for strong, apple for mild, mesquite for bold.",
			Category:    "techniques",
			Difficulty:  "advanced",
			Cuisine:     "bbq",
			Keywords:    []string{"smoking", "cold smoke", "hot smoke", "wood chips", "airflow", "wood flavors"},
			CookingTime: "2-12 hours",
			Equipment:   []string{"smoker", "wood chips", "thermometer"},
			Dietary:     DietaryInfo{"gluten_free": true, "dairy_free": true},
		},

		// Ingredient Substitutions
		{
			ID:         "substitution_001",
			Title:      "Egg Substitutes",
			Content:    "Egg substitutes: 1/4 cup applesauce for binding, 1/4 cup mashed banana for moisture, 1 tbsp ground flaxseed + 3 tbsp water for structure, 1/4 cup silken tofu for protein, 1/4 cup yogurt for richness. Each works best in different recipes.",
			Category:   "substitutions",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"eggs", "substitutes", "applesauce", "banana", "flaxseed", "tofu", "yogurt"},
			Dietary:    DietaryInfo{"vegetarian": true, "vegan": true, "gluten_free": true},
		},
		{
			ID:         "substitution_002",
			Title:      "Dairy Alternatives",
			Content:    "Dairy alternatives: Almond milk for drinking, coconut milk for richness, oat milk for neutral flavor, cashew milk for creaminess. For butter: coconut oil, olive oil, or avocado oil. For cheese: nutritional yeast, cashew cheese, or store-bought alternatives.",
			Category:   "substitutions",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"dairy", "almond milk", "coconut milk", "oat milk", "cashew milk", "butter alternatives"},
			Dietary:    DietaryInfo{"vegetarian": true, "vegan": true, "dairy_free": true, "gluten_free": true},
		},
		{
			ID:         "substitution_003",
			Title:      "Gluten-Free Flour Blends",
			Content:    "Gluten-free flour blends: Mix 40% rice flour, 30% sorghum flour, 20% potato starch, 10% tapioca starch. Add xanthan gum for binding (1/4 tsp per cup). For all-purpose: 60% white rice, 20% brown rice, 20% potato starch.",
			Category:   "substitutions",
			Difficulty: "intermediate",
			Cuisine:    "universal",
			Keywords:   []string{"gluten-free", "flour blends", "rice flour", "sorghum", "potato starch", "xanthan gum"},
			Dietary:    DietaryInfo{"vegetarian": true, "vegan": true, "gluten_free": true, "dairy_free": true},
		},

		// Cuisine-Specific Techniques
		{
			ID:          "cuisine_001",
			Title:       "Chinese Stir-Frying",
			Content:     "Chinese stir-frying: Use wok on high heat, preheat until smoking. Add oil, swirl to coat. Cook aromatics first (ginger, garlic, scallions), then protein, then vegetables. Add sauce last, toss quickly. The key is high heat and quick cooking.",
			Category:    "cuisine_specific",
			Difficulty:  "intermediate",
			Cuisine:     "chinese",
			Keywords:    []string{"stir-fry", "wok", "high heat", "aromatics", "quick cooking", "chinese"},
			CookingTime: "10-15 minutes",
			Equipment:   []string{"wok", "spatula"},
			Dietary:     DietaryInfo{"vegetarian": true, "dairy_free": true},
		},
		{
			ID:          "cuisine_002",
			Title:       "Italian Pasta Method",
			Content:     "Italian pasta cooking: Use large pot with plenty of salted water (1 tbsp salt per pound pasta). Cook until al dente (firm to bite). Reserve pasta water for sauce consistency. Never rinse pasta after cooking. Toss with sauce immediately.",
			Category:    "cuisine_specific",
			Difficulty:  "beginner",
			Cuisine:     "italian",
			Keywords:    []string{"pasta", "al dente", "salted water", "pasta water", "sauce", "italian"},
			CookingTime: "15-20 minutes",
			Equipment:   []string{"large pot", "colander"},
			Dietary:     DietaryInfo{"vegetarian": true, "dairy_free": true},
		},
		{
			ID:          "cuisine_003",
			Title:       "French Sauce Technique",
			Content:     "French sauce making: Start with roux (equal parts flour and butter), cook until desired color. Add liquid gradually while whisking. Simmer to thicken, season with salt and pepper. Finish with acid (lemon, vinegar) and herbs. Strain for smooth texture.",
			Category:    "cuisine_specific",
			Difficulty:  "intermediate",
			Cuisine:     "french",
			Keywords:    []string{"french sauce", "roux", "thickening", "whisking", "acid", "herbs", "straining"},
			CookingTime: "20-30 minutes",
			Equipment:   []string{"saucepan", "whisk", "fine strainer"},
			Dietary:     DietaryInfo{"vegetarian": true},
		},

		// Food Safety & Science
		{
			ID:         "safety_001",
			Title:      "Safe Cooking Temperatures",
			Content:    "Cooking temperatures: Rare beef 125°F, medium 135°F, well-done 145°F. Chicken 165°F, fish 145°F, pork 145°F. Use meat thermometer for accuracy. Rest meat 5-10 minutes after cooking for juices to redistribute.",
			Category:   "food_safety",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"temperature", "beef", "chicken", "fish", "pork", "thermometer", "resting"},
			Equipment:  []string{"meat thermometer"},
			Dietary:    DietaryInfo{"gluten_free": true, "dairy_free": true},
		},
		{
			ID:         "safety_002",
			Title:      "Cross-Contamination Prevention",
			Content:    "Cross-contamination prevention: Use separate cutting boards for raw meat and vegetables. Wash hands after handling raw meat. Sanitize surfaces with hot soapy water or bleach solution. Store raw meat below ready-to-eat foods in refrigerator.",
			Category:   "food_safety",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"cross-contamination", "cutting boards", "hand washing", "sanitizing", "storage"},
			Equipment:  []string{"cutting boards"},
			Dietary:    DietaryInfo{"gluten_free": true, "dairy_free": true, "vegetarian": true, "vegan": true},
		},
		{
			ID:         "science_001",
			Title:      "Maillard Reaction",
			Content:    "Maillard reaction: Browning reaction between amino acids and reducing sugars at 140-165°C (284-329°F). Creates complex flavors and aromas. Occurs in searing meat, toasting bread, roasting coffee. Control heat and moisture for optimal results.",
			Category:   "food_science",
			Difficulty: "intermediate",
			Cuisine:    "universal",
			Keywords:   []string{"maillard reaction", "browning", "amino acids", "sugars", "temperature", "flavor"},
			Dietary:    DietaryInfo{"vegetarian": true, "gluten_free": true, "dairy_free": true},
		},

		// Meal Planning & Efficiency
		{
			ID:         "planning_001",
			Title:      "Meal Prep Strategies",
			Content:    "Meal prep strategies: Cook proteins in bulk (chicken, beef, beans). Roast vegetables in large batches. Prepare sauces and dressings ahead. Use freezer-friendly containers. Plan 3-4 days of meals, shop once per week. Prep ingredients on Sunday for weekday cooking.",
			Category:   "meal_planning",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"meal prep", "bulk cooking", "roasting", "sauces", "freezing", "planning"},
			Equipment:  []string{"storage containers", "sheet pans"},
			Dietary:    DietaryInfo{"vegetarian": true, "gluten_free": true, "dairy_free": true},
		},
		{
			ID:          "planning_002",
			Title:       "Quick Dinner Ideas",
			Content:     "Quick dinner ideas: Stir-fry with pre-cut vegetables and protein, pasta with jarred sauce and frozen vegetables, sheet pan dinner with chicken and vegetables, breakfast for dinner with eggs and toast, or grain bowls with leftover proteins and fresh vegetables.",
			Category:    "meal_planning",
			Difficulty:  "beginner",
			Cuisine:     "universal",
			Keywords:    []string{"dinner", "quick", "stir-fry", "pasta", "sheet pan", "breakfast", "grain bowls"},
			CookingTime: "20-30 minutes",
			Dietary:     DietaryInfo{"vegetarian": true},
		},
		{
			ID:         "efficiency_001",
			Title:      "Kitchen Efficiency Tips",
			Content:    "Kitchen efficiency: Mise en place (prep all ingredients before cooking), use multiple burners simultaneously, clean as you go, use kitchen timer for multiple dishes, organize workspace for smooth workflow. Plan cooking order to maximize oven and stovetop usage.",
			Category:   "efficiency",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"mise en place", "multiple burners", "clean as you go", "timer", "organization"},
			Dietary:    DietaryInfo{"vegetarian": true, "vegan": true, "gluten_free": true, "dairy_free": true},
		},

		// Knife Skills & Prep
		{
			ID:         "prep_001",
			Title:      "Knife Skills Basics",
			Content:    "Knife skills: Keep knives sharp, a dull knife is dangerous. Use the claw grip to protect fingers. Rock the blade for herbs, slice with a drawing motion for proteins. Uniform cuts cook evenly. Learn dice, julienne, and chiffonade for most recipes.",
			Category:   "techniques",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"knife", "chopping", "dicing", "julienne", "chiffonade", "claw grip"},
			Equipment:  []string{"chef's knife", "cutting board"},
			Dietary:    DietaryInfo{"vegetarian": true, "vegan": true, "gluten_free": true, "dairy_free": true},
		},
		{
			ID:         "science_002",
			Title:      "Seasoning and Salt Timing",
			Content:    "Salt timing matters: Salt meat 40+ minutes ahead or right before cooking, never in between. Season in layers as you cook instead of only at the end. Acid brightens flavor at the finish. Taste as you go and adjust gradually.",
			Category:   "food_science",
			Difficulty: "beginner",
			Cuisine:    "universal",
			Keywords:   []string{"salt", "seasoning", "acid", "layers", "taste", "brining"},
			Dietary:    DietaryInfo{"vegetarian": true, "vegan": true, "gluten_free": true, "dairy_free": true},
		},
	}
}
