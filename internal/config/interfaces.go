package config

// Loader defines the interface for loading configuration
type Loader interface {
	Load(path string) (*Config, error)
}

// FileLoader loads catalogs from disk.
type FileLoader struct{}

// Load implements Loader.
func (FileLoader) Load(path string) (*Config, error) {
	return Load(path)
}
