package driven

// ConfigStore is the key-value view of the querytrans configuration file.
// Keys are dotted paths such as "transform.schemes".
type ConfigStore interface {
	// Get returns the raw value at key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns the value at key, or "" when unset or not a string.
	GetString(key string) string

	// GetInt returns the value at key, or 0 when unset or not an integer.
	GetInt(key string) int

	// GetFloat returns a numeric value as float64. Integers are widened.
	GetFloat(key string) float64

	// GetBool returns the value at key, or false when unset or not a bool.
	GetBool(key string) bool

	// GetStringSlice returns a list of strings, or nil.
	GetStringSlice(key string) []string

	// Set stores value at key and writes the file.
	Set(key string, value any) error

	// Save writes the current values to disk.
	Save() error

	// Load re-reads the file, replacing in-memory values.
	Load() error

	// Path is the location of the configuration file.
	Path() string
}
