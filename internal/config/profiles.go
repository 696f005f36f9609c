package config

import (
	"os"
	"sort"
	"strings"
)

// DiscoverProfiles scans the config directory for profile documents and
// returns their names sorted. Files directly under config/ are named by
// their base name; files under config/profiles/ carry a "profiles/"
// prefix (always with a forward slash, on every platform). A missing
// config directory yields an empty list, not an error: a fresh checkout
// simply has no profiles yet.
func DiscoverProfiles(layout *Layout) ([]string, error) {
	var profiles []string

	names, err := listJSONStems(layout.ConfigDir())
	if err != nil {
		return nil, err
	}
	profiles = append(profiles, names...)

	subNames, err := listJSONStems(layout.ProfilesDir())
	if err != nil {
		return nil, err
	}
	for _, name := range subNames {
		profiles = append(profiles, "profiles/"+name)
	}

	sort.Strings(profiles)
	return profiles, nil
}

// listJSONStems returns the base names (without extension) of *.json files
// directly inside dir. A missing directory is treated as empty.
func listJSONStems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var stems []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(name, ".json"))
	}
	return stems, nil
}

// ProfileExists reports whether the profile resolves to an existing file.
func ProfileExists(layout *Layout, name string) bool {
	info, err := os.Stat(layout.ProfilePath(name))
	return err == nil && !info.IsDir()
}

// SplitProfileName splits a discovered profile name into its group ("" for
// main configs, "profiles" for sub-profiles) and base name. Used by the
// profiles listing to render the two sections separately.
func SplitProfileName(name string) (group, base string) {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
