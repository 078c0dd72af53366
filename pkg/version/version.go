package version

import "runtime/debug"

// Get returns the module version recorded in the build info,
// or "dev" when built outside a module context.
func Get() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}
