package validation

// Validation categories accepted by the API.
const (
	CategoryDietary   = "dietary"
	CategoryCuisine   = "cuisine"
	CategoryEquipment = "equipment"
	CategoryHealth    = "health"
)

// KnownCategories lists the accepted validation categories.
var KnownCategories = []string{CategoryDietary, CategoryCuisine, CategoryEquipment, CategoryHealth}

type term struct {
	category    string
	confidence  float64
	description string
}

// commonTerms is the built-in culinary vocabulary checked before any
// external call.
var commonTerms = map[string]term{
	// Dietary restrictions
	"halal":         {CategoryDietary, 0.95, "Islamic dietary law"},
	"kosher":        {CategoryDietary, 0.95, "Jewish dietary law"},
	"vegan":         {CategoryDietary, 0.98, "Plant-based diet excluding all animal products"},
	"vegetarian":    {CategoryDietary, 0.98, "Plant-based diet excluding meat"},
	"keto":          {CategoryDietary, 0.95, "Low-carb, high-fat diet"},
	"ketogenic":     {CategoryDietary, 0.95, "Low-carb, high-fat diet"},
	"paleo":         {CategoryDietary, 0.90, "Paleolithic diet"},
	"gluten-free":   {CategoryDietary, 0.90, "Diet excluding gluten"},
	"dairy-free":    {CategoryDietary, 0.90, "Diet excluding dairy products"},
	"lactose-free":  {CategoryDietary, 0.90, "Diet excluding lactose"},
	"pescatarian":   {CategoryDietary, 0.85, "Vegetarian diet that includes fish"},
	"flexitarian":   {CategoryDietary, 0.80, "Mostly vegetarian with occasional meat"},
	"raw":           {CategoryDietary, 0.85, "Raw food diet"},
	"whole30":       {CategoryDietary, 0.85, "30-day elimination diet"},
	"mediterranean": {CategoryCuisine, 0.90, "Mediterranean cuisine"},

	// Cuisines
	"italian":        {CategoryCuisine, 0.95, "Italian cuisine"},
	"chinese":        {CategoryCuisine, 0.95, "Chinese cuisine"},
	"japanese":       {CategoryCuisine, 0.95, "Japanese cuisine"},
	"mexican":        {CategoryCuisine, 0.95, "Mexican cuisine"},
	"indian":         {CategoryCuisine, 0.95, "Indian cuisine"},
	"french":         {CategoryCuisine, 0.95, "French cuisine"},
	"thai":           {CategoryCuisine, 0.95, "Thai cuisine"},
	"korean":         {CategoryCuisine, 0.95, "Korean cuisine"},
	"greek":          {CategoryCuisine, 0.95, "Greek cuisine"},
	"spanish":        {CategoryCuisine, 0.95, "Spanish cuisine"},
	"american":       {CategoryCuisine, 0.95, "American cuisine"},
	"middle eastern": {CategoryCuisine, 0.90, "Middle Eastern cuisine"},

	// Equipment
	"oven":           {CategoryEquipment, 0.95, "Kitchen oven for baking and roasting"},
	"stovetop":       {CategoryEquipment, 0.95, "Stovetop for cooking"},
	"microwave":      {CategoryEquipment, 0.95, "Microwave oven"},
	"blender":        {CategoryEquipment, 0.95, "Kitchen blender"},
	"food processor": {CategoryEquipment, 0.95, "Food processor"},
	"slow cooker":    {CategoryEquipment, 0.90, "Slow cooker or crock pot"},
	"instant pot":    {CategoryEquipment, 0.90, "Instant Pot pressure cooker"},
	"air fryer":      {CategoryEquipment, 0.90, "Air fryer"},
	"grill":          {CategoryEquipment, 0.90, "Grill for outdoor cooking"},
	"wok":            {CategoryEquipment, 0.85, "Wok for stir-frying"},
	"cast iron":      {CategoryEquipment, 0.85, "Cast iron cookware"},
	"non-stick":      {CategoryEquipment, 0.85, "Non-stick cookware"},

	// Health conditions and goals
	"diabetes":            {CategoryHealth, 0.95, "Diabetes dietary considerations"},
	"heart disease":       {CategoryHealth, 0.95, "Heart disease dietary considerations"},
	"high blood pressure": {CategoryHealth, 0.95, "High blood pressure dietary considerations"},
	"celiac":              {CategoryHealth, 0.95, "Celiac disease (gluten intolerance)"},
	"lactose intolerant":  {CategoryHealth, 0.95, "Lactose intolerance"},
	"allergies":           {CategoryHealth, 0.90, "Food allergies"},
	"weight loss":         {CategoryHealth, 0.90, "Weight loss dietary goals"},
	"muscle gain":         {CategoryHealth, 0.90, "Muscle gain dietary goals"},
	"energy":              {CategoryHealth, 0.85, "Energy-focused dietary goals"},
	"digestive health":    {CategoryHealth, 0.85, "Digestive health considerations"},
}

// ValidCategory reports whether the category is one the API accepts.
func ValidCategory(category string) bool {
	for _, c := range KnownCategories {
		if c == category {
			return true
		}
	}
	return false
}
