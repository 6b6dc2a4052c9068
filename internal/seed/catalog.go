//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package seed

type countryCities struct {
	country string
	cities  []string
}

// geography lists the American countries and their main cities.
var geography = []countryCities{
	{"Canada", []string{"Toronto", "Vancouver", "Montreal", "Calgary", "Ottawa", "Edmonton", "Winnipeg", "Québec", "Halifax", "Victoria"}},
	{"United States", []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose"}},
	{"Mexico", []string{"Mexico City", "Guadalajara", "Monterrey", "Puebla", "Mérida", "Tijuana", "León", "Cancún", "Toluca", "Chihuahua"}},
	{"Guatemala", []string{"Guatemala City", "Quetzaltenango", "Escuintla", "Cobán", "Puerto Barrios", "Huehuetenango", "Chiquimula", "Mazatenango", "Jalapa", "Antigua Guatemala"}},
	{"Belize", []string{"Belmopan", "Belize City", "San Ignacio", "Orange Walk", "Dangriga", "Corozal", "San Pedro", "Benque Viejo", "Punta Gorda", "Placencia"}},
	{"El Salvador", []string{"San Salvador", "Santa Ana", "San Miguel", "Soyapango", "Usulután", "Santa Tecla", "Sonsonate", "Ahuachapán", "Zacatecoluca", "La Unión"}},
	{"Honduras", []string{"Tegucigalpa", "San Pedro Sula", "La Ceiba", "Choluteca", "Comayagua", "Puerto Cortés", "El Progreso", "Danlí", "Juticalpa", "Siguatepeque"}},
	{"Nicaragua", []string{"Managua", "León", "Granada", "Masaya", "Estelí", "Chinandega", "Matagalpa", "Jinotega", "Bluefields", "Rivas"}},
	{"Costa Rica", []string{"San José", "Alajuela", "Cartago", "Heredia", "Liberia", "Puntarenas", "Limón", "San Carlos", "Turrialba", "Nicoya"}},
	{"Panama", []string{"Panama City", "Colón", "David", "Santiago", "Penonomé", "Chitré", "La Chorrera", "Las Tablas", "Aguadulce", "Boquete"}},
	{"Cuba", []string{"Havana", "Santiago de Cuba", "Camagüey", "Holguín", "Santa Clara", "Guantánamo", "Bayamo", "Cienfuegos", "Pinar del Río", "Matanzas"}},
	{"Dominican Republic", []string{"Santo Domingo", "Santiago", "La Romana", "San Pedro de Macorís", "San Cristóbal", "Puerto Plata", "La Vega", "Higüey", "Bonao", "Moca"}},
	{"Colombia", []string{"Bogotá", "Medellín", "Cali", "Barranquilla", "Cartagena", "Cúcuta", "Bucaramanga", "Ibagué", "Pereira", "Santa Marta"}},
	{"Venezuela", []string{"Caracas", "Maracaibo", "Valencia", "Barquisimeto", "Maracay", "Maturín", "Barcelona", "Ciudad Guayana", "Cumaná", "San Cristóbal"}},
	{"Ecuador", []string{"Quito", "Guayaquil", "Cuenca", "Ambato", "Manta", "Portoviejo", "Machala", "Loja", "Riobamba", "Ibarra"}},
	{"Peru", []string{"Lima", "Arequipa", "Trujillo", "Chiclayo", "Piura", "Cusco", "Huancayo", "Iquitos", "Tacna", "Puno"}},
	{"Bolivia", []string{"La Paz", "Santa Cruz de la Sierra", "Cochabamba", "Sucre", "Oruro", "Potosí", "Tarija", "Trinidad", "Cobija", "El Alto"}},
	{"Brazil", []string{"São Paulo", "Rio de Janeiro", "Brasília", "Salvador", "Fortaleza", "Belo Horizonte", "Curitiba", "Manaus", "Recife", "Porto Alegre"}},
	{"Chile", []string{"Santiago", "Valparaíso", "Concepción", "La Serena", "Antofagasta", "Temuco", "Iquique", "Rancagua", "Talca", "Puerto Montt"}},
	{"Argentina", []string{"Buenos Aires", "Córdoba", "Rosario", "Mendoza", "La Plata", "Mar del Plata", "Salta", "San Miguel de Tucumán", "Santa Fe", "Neuquén"}},
	{"Paraguay", []string{"Asunción", "Ciudad del Este", "Encarnación", "Pedro Juan Caballero", "Concepción", "Villarrica", "Coronel Oviedo", "Caaguazú", "Itauguá", "San Lorenzo"}},
	{"Uruguay", []string{"Montevideo", "Salto", "Paysandú", "Las Piedras", "Rivera", "Maldonado", "Tacuarembó", "Canelones", "San José de Mayo", "Durazno"}},
}

// Category ids follow the order of this list.
var categoryNames = []string{
	"Funko Pop Figures",
	"Trading Cards",
	"Comics and Manga",
	"Geek Apparel",
	"Video Games",
	"Anime Accessories",
	"Movie Collectibles",
	"Gamer Decor",
	"Retro Consoles",
	"Posters and Art",
}

var supplierBrands = []string{
	"Funko Inc.", "Bandai Spirits", "Nintendo Merch", "Hasbro Collectibles", "Crunchyroll Store",
	"Marvel Licensing", "DC Universe Goods", "Square Enix Shop", "GameStop Partners", "Hot Topic Co.",
	"Loungefly", "Good Smile Company", "Kotobukiya", "The Pokémon Company", "LEGO Collectors",
	"Capcom Gear", "Namco Toys", "Wizards of the Coast", "Ubisoft Merch", "Blizzard Gear Store",
}

var franchises = []string{
	"Marvel", "DC", "Star Wars", "Harry Potter", "Pokémon", "Dragon Ball", "Naruto",
	"One Piece", "Zelda", "Halo", "Spider-Man", "Batman", "Stranger Things", "Attack on Titan",
	"Demon Slayer", "League of Legends", "Minecraft", "Elden Ring", "Final Fantasy", "Genshin Impact",
}

// itemCategory maps product kinds to their category id. Kinds without an
// entry get a random category.
var itemCategory = map[string]int64{
	"Funko Pop":           1,
	"Action Figure":       1,
	"Trading Cards":       2,
	"T-Shirt":             4,
	"Hoodie":              4,
	"Poster":              10,
	"Pin Set":             6,
	"Retro Console":       9,
	"Limited Edition Pad": 9,
	"Mystery Box":         7,
	"Collectible Replica": 7,
	"LED Lamp":            8,
}

var itemKinds = []string{
	"Funko Pop", "Action Figure", "T-Shirt", "Themed Mug", "Hoodie", "Poster",
	"Trading Cards", "Pin Set", "Retro Console", "RGB Mousepad",
	"Limited Edition Pad", "Metal Keychain", "LED Lamp", "Mystery Box", "Collectible Replica",
}

var employeeRoles = []string{"Sales", "Customer Service", "Courier", "Manager", "Supervisor"}

var returnReasons = []string{
	"Defective product", "Wrong size", "Wrong color",
	"Late delivery", "Not as expected", "Incomplete order",
}

var promotionNames = []string{
	"Anime Week",
	"2x1 on Marvel Funkos",
	"Gamer Weekend Discount",
	"Superhero Month",
	"Retro Console Event",
	"Geek Black Friday",
	"Collect and Win",
	"Comic Week",
	"Otaku Festival",
	"Cyber LootBox Days",
}

var loyaltyDescriptions = []string{
	"Funko figure purchase",
	"Points redeemed for a rare card",
	"Anime event bonus",
	"Collectible product return",
	"Purchase during gamer promotion",
	"TCG tournament participation",
	"Limited edition pre-order",
}

var (
	paymentMethods   = []string{"cash", "card", "transfer"}
	shipmentStatuses = []string{"in_transit", "delivered", "delayed"}
	orderStatuses    = []string{"pending", "shipped", "delivered", "returned"}
)

// Plaintext passwords of the seeded accounts, stored as bcrypt hashes.
const (
	customerPassword = "user123"
	adminPassword    = "admin123"
	employeePassword = "emp123"
)
