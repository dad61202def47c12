package classifier

// DefaultKeywords maps category names to their curated keyword lists.
// Categories without an entry fall back to a single-entry list holding
// the lower-cased category name.
var DefaultKeywords = map[string][]string{
	"Redes":           {"red", "internet", "wifi", "conexión", "conexion", "latencia", "router", "modem"},
	"Hardware":        {"mouse", "teclado", "monitor", "pantalla", "disco", "tarjeta", "hardware", "cpu", "ram"},
	"Infraestructura": {"servidor", "servicio", "arranca", "arrancar", "caida", "caído", "sistema", "infraestructura"},
}
