package stitch

// CatalogThread is one entry of the built-in Brother thread catalog. PEC
// color lists reference these entries by id; PES files may embed RGB
// directly instead.
type CatalogThread struct {
	RGB  Color
	Name string
	Code string
}

// CatalogThreadByID returns the catalog thread with the given id (1..64).
// Id 0 is a placeholder for invalid references and reports false.
func CatalogThreadByID(id int) (CatalogThread, bool) {
	if id < 1 || id >= len(threadCatalog) {
		return CatalogThread{}, false
	}
	return threadCatalog[id], true
}

// threadCatalog is the standard Brother palette. Entry 0 marks an invalid
// value and is never written.
var threadCatalog = [65]CatalogThread{
	{Color{0, 0, 0}, "Unknown", "0"},
	{Color{14, 31, 124}, "Prussian Blue", "1"},
	{Color{10, 85, 163}, "Blue", "2"},
	{Color{0, 135, 119}, "Teal Green", "3"},
	{Color{75, 107, 175}, "Cornflower Blue", "4"},
	{Color{237, 23, 31}, "Red", "5"},
	{Color{209, 92, 0}, "Reddish Brown", "6"},
	{Color{145, 54, 151}, "Magenta", "7"},
	{Color{228, 154, 203}, "Light Lilac", "8"},
	{Color{145, 95, 172}, "Lilac", "9"},
	{Color{158, 214, 125}, "Mint Green", "10"},
	{Color{232, 169, 0}, "Deep Gold", "11"},
	{Color{254, 186, 53}, "Orange", "12"},
	{Color{255, 255, 0}, "Yellow", "13"},
	{Color{112, 188, 31}, "Lime Green", "14"},
	{Color{186, 152, 0}, "Brass", "15"},
	{Color{168, 168, 168}, "Silver", "16"},
	{Color{125, 111, 0}, "Russet Brown", "17"},
	{Color{255, 255, 179}, "Cream Brown", "18"},
	{Color{79, 85, 86}, "Pewter", "19"},
	{Color{0, 0, 0}, "Black", "20"},
	{Color{11, 61, 145}, "Ultramarine", "21"},
	{Color{119, 1, 118}, "Royal Purple", "22"},
	{Color{41, 49, 51}, "Dark Gray", "23"},
	{Color{42, 19, 1}, "Dark Brown", "24"},
	{Color{246, 74, 138}, "Deep Rose", "25"},
	{Color{178, 118, 36}, "Light Brown", "26"},
	{Color{252, 187, 197}, "Salmon Pink", "27"},
	{Color{254, 55, 15}, "Vermilion", "28"},
	{Color{240, 240, 240}, "White", "29"},
	{Color{106, 28, 138}, "Violet", "30"},
	{Color{168, 221, 196}, "Seacrest", "31"},
	{Color{37, 132, 187}, "Sky Blue", "32"},
	{Color{254, 179, 67}, "Pumpkin", "33"},
	{Color{255, 243, 107}, "Cream Yellow", "34"},
	{Color{208, 166, 96}, "Khaki", "35"},
	{Color{209, 84, 0}, "Clay Brown", "36"},
	{Color{102, 186, 73}, "Leaf Green", "37"},
	{Color{19, 74, 70}, "Peacock Blue", "38"},
	{Color{135, 135, 135}, "Gray", "39"},
	{Color{216, 204, 198}, "Warm Gray", "40"},
	{Color{67, 86, 7}, "Dark Olive", "41"},
	{Color{253, 217, 222}, "Flesh Pink", "42"},
	{Color{249, 147, 188}, "Pink", "43"},
	{Color{0, 56, 34}, "Deep Green", "44"},
	{Color{178, 175, 212}, "Lavender", "45"},
	{Color{104, 106, 176}, "Wisteria Violet", "46"},
	{Color{239, 227, 185}, "Beige", "47"},
	{Color{247, 56, 102}, "Carmine", "48"},
	{Color{181, 75, 100}, "Amber Red", "49"},
	{Color{19, 43, 26}, "Olive Green", "50"},
	{Color{199, 1, 86}, "Dark Fuchsia", "51"},
	{Color{254, 158, 50}, "Tangerine", "52"},
	{Color{168, 222, 235}, "Light Blue", "53"},
	{Color{0, 103, 62}, "Emerald Green", "54"},
	{Color{78, 41, 144}, "Purple", "55"},
	{Color{47, 126, 32}, "Moss Green", "56"},
	{Color{255, 204, 204}, "Flesh Pink", "57"},
	{Color{255, 217, 17}, "Harvest Gold", "58"},
	{Color{9, 91, 166}, "Electric Blue", "59"},
	{Color{240, 249, 112}, "Lemon Yellow", "60"},
	{Color{227, 243, 91}, "Fresh Green", "61"},
	{Color{255, 153, 0}, "Orange", "62"},
	{Color{255, 240, 141}, "Cream Yellow", "63"},
	{Color{255, 200, 200}, "Applique", "64"},
}
