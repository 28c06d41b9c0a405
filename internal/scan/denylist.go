package scan

// deniedDirs are directory basenames the walker never enters, at any
// tree level, regardless of user flags. The security set keeps key and
// credential material out of the browser entirely; the churn set skips
// trees that are huge and never hold Claude configuration. User config
// can extend this list with glob patterns but can never shrink it.
var deniedDirs = map[string]struct{}{
	// keys, credentials, secret stores
	".ssh":            {},
	".gnupg":          {},
	".aws":            {},
	".azure":          {},
	".kube":           {},
	".docker":         {},
	"gcloud":          {},
	".password-store": {},
	".pki":            {},
	"Keychains":       {},
	".openvpn":        {},
	".netrc.d":        {},

	// browser and mail profiles
	".mozilla":      {},
	".thunderbird":  {},
	"google-chrome": {},
	"chromium":      {},

	// version control metadata
	".git": {},
	".svn": {},
	".hg":  {},
	".bzr": {},

	// dependency and build churn
	"node_modules":     {},
	"bower_components": {},
	"vendor":           {},
	"__pycache__":      {},
	".venv":            {},
	"venv":             {},
	".tox":             {},
	".mypy_cache":      {},
	".pytest_cache":    {},
	".ruff_cache":      {},
	".gradle":          {},
	".m2":              {},
	"target":           {},
	"dist":             {},
	"build":            {},
	"out":              {},
	".next":            {},
	".nuxt":            {},
	"coverage":         {},
	".cache":           {},
	".npm":             {},
	".yarn":            {},
	".pnpm-store":      {},
	".terraform":       {},

	// IDE state
	".idea":   {},
	".vscode": {},
	".vs":     {},
}

func deniedDir(name string) bool {
	_, ok := deniedDirs[name]
	return ok
}
