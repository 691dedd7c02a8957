package config

// BloatPatterns is the built-in list of patterns matching common non-essential
// artifacts: version-control metadata, OS metadata, editor configuration,
// build and cache outputs, dependency directories, language-specific caches,
// and secret or credential files. The list is activated as a unit by a single
// flag and never partially enabled. Bare names rely on the matcher's
// name-anywhere rule, so "node_modules" excludes the directory at any depth.
var BloatPatterns = []string{
	// version control
	".git",
	".hg",
	".svn",
	// OS metadata
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	// editor and IDE configuration
	".idea",
	".vscode",
	"*.swp",
	"*.swo",
	// build, cache, and coverage outputs
	"build",
	"dist",
	"out",
	"target",
	"coverage",
	".cache",
	".gradle",
	".next",
	".nuxt",
	// dependency directories
	"node_modules",
	"vendor",
	"bower_components",
	// language-specific caches and environments
	"__pycache__",
	"*.pyc",
	".venv",
	"venv",
	".tox",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
	"*.class",
	"*.o",
	// lock and archive noise
	"*.log",
	"*.tmp",
	// secret and credential files
	".env",
	".env.*",
	"*.pem",
	"*.key",
	"id_rsa",
	"id_ed25519",
	"credentials.json",
	".npmrc",
	".netrc",
}
