package models

// foodTypes — каталог типов еды для случайного выбора блюда.
var foodTypes = []string{
	"Curry",
	"Topping",
	"Seafood",
	"Cook-to-order",
	"Noodles",
	"Soup",
	"Snacks",
	"Rice",
	"Salad",
	"Sandwiches",
	"Pasta",
	"Sushi",
	"Chili Dip",
	"Rice & Salad",
	"Beverages",
	"Desserts",
	"Fruit",
	"Dim Sum",
	"Add-on",
	"Beverage",
}

// FoodTypes возвращает копию каталога типов еды.
func FoodTypes() []string {
	return append([]string(nil), foodTypes...)
}
