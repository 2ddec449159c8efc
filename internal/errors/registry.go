package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration errors (E100-E119)

	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "dhtml.json could not be located.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "dhtml.json exists but could not be read or parsed.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid server address",
		Detail:   "The configured host/port pair does not form a usable listen address.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid demo layout",
		Detail:   "The configured demo sizes or multiplier field layout cannot be wired.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Configuration write failed",
		Detail:   "dhtml.json could not be written.",
	},
}

// Registered reports whether a code exists in the registry.
func Registered(code string) bool {
	_, ok := registry[code]
	return ok
}
