package config

const (
	// DefaultRootDir is the default harness root; example commands run here
	DefaultRootDir = "."
	// DefaultManifestFile is the default manifest path, relative to the root
	DefaultManifestFile = "test-config.json"
	// DefaultOutputJSONFile is the default run record file name
	DefaultOutputJSONFile = "e2e-results.json"
	// DefaultOutputJSONDir is the default run record directory
	DefaultOutputJSONDir = "storage"
	// DefaultLockFile is the run lock file name inside the output directory
	DefaultLockFile = ".ebt.lock"
	// DefaultEnvFile is loaded into the environment of build commands
	DefaultEnvFile = ".env"
	// DefaultNodeBinary runs the build tool script when cliPath is a path
	DefaultNodeBinary = "node"
)
