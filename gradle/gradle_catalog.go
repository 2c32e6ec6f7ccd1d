package gradle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
)

// catalogFile is the raw shape of gradle/libs.versions.toml. Entries can be plain strings
// or tables, so they are decoded loosely and interpreted afterwards.
type catalogFile struct {
	Versions  map[string]any      `toml:"versions"`
	Libraries map[string]any      `toml:"libraries"`
	Plugins   map[string]any      `toml:"plugins"`
	Bundles   map[string][]string `toml:"bundles"`
}

type Library struct {
	Alias      string `json:"alias"`
	Group      string `json:"group"`
	Name       string `json:"name"`
	Version    string `json:"version,omitempty"`
	VersionRef string `json:"versionRef,omitempty"`
}

type Plugin struct {
	Alias   string `json:"alias"`
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

// Catalog is a parsed version catalog. Lookups accept the Gradle accessor form
// (libs.firebase.firestore) as well as the TOML alias (firebase-firestore).
type Catalog struct {
	Versions  map[string]string
	Libraries map[string]Library
	Plugins   map[string]Plugin
	Bundles   map[string][]string
}

// LoadVersionCatalog parses a libs.versions.toml file. A missing file yields an empty catalog.
func LoadVersionCatalog(path string) (*Catalog, error) {
	catalog := &Catalog{
		Versions:  map[string]string{},
		Libraries: map[string]Library{},
		Plugins:   map[string]Plugin{},
		Bundles:   map[string][]string{},
	}
	exists, err := fileutils.IsFileExists(path, false)
	if err != nil || !exists {
		return catalog, err
	}
	var raw catalogFile
	if _, err = toml.DecodeFile(path, &raw); err != nil {
		return nil, errorutils.CheckErrorf("failed to parse version catalog %s: %s", path, err.Error())
	}
	for alias, v := range raw.Versions {
		catalog.Versions[alias] = versionString(v)
	}
	for alias, v := range raw.Libraries {
		lib, err := parseLibrary(alias, v)
		if err != nil {
			return nil, errorutils.CheckError(err)
		}
		if lib.VersionRef != "" {
			lib.Version = catalog.Versions[lib.VersionRef]
		}
		catalog.Libraries[normalizeAlias(alias)] = lib
	}
	for alias, v := range raw.Plugins {
		plugin, err := parsePlugin(alias, v)
		if err != nil {
			return nil, errorutils.CheckError(err)
		}
		if ref, ok := pluginVersionRef(v); ok {
			plugin.Version = catalog.Versions[ref]
		}
		catalog.Plugins[normalizeAlias(alias)] = plugin
	}
	for alias, libs := range raw.Bundles {
		catalog.Bundles[normalizeAlias(alias)] = libs
	}
	return catalog, nil
}

// Library resolves a library accessor such as libs.firebase.firestore.
func (c *Catalog) Library(accessor string) (Library, bool) {
	lib, ok := c.Libraries[normalizeAlias(strings.TrimPrefix(accessor, catalogPrefix))]
	return lib, ok
}

// Plugin resolves a plugin accessor such as libs.plugins.android.application.
func (c *Catalog) Plugin(accessor string) (Plugin, bool) {
	plugin, ok := c.Plugins[normalizeAlias(strings.TrimPrefix(accessor, catalogPluginsPrefix))]
	return plugin, ok
}

// Bundle resolves a bundle accessor into its libraries.
func (c *Catalog) Bundle(accessor string) ([]Library, bool) {
	aliases, ok := c.Bundles[normalizeAlias(strings.TrimPrefix(accessor, catalogBundlesPrefix))]
	if !ok {
		return nil, false
	}
	var libs []Library
	for _, alias := range aliases {
		if lib, ok := c.Libraries[normalizeAlias(alias)]; ok {
			libs = append(libs, lib)
		}
	}
	return libs, true
}

func (c *Catalog) LibraryAliases() []string {
	aliases := make([]string, 0, len(c.Libraries))
	for _, lib := range c.Libraries {
		aliases = append(aliases, lib.Alias)
	}
	sort.Strings(aliases)
	return aliases
}

// normalizeAlias maps the separators Gradle treats as equivalent ('-', '_', '.') to '.'.
func normalizeAlias(alias string) string {
	return strings.NewReplacer("-", ".", "_", ".").Replace(strings.TrimSpace(alias))
}

func parseLibrary(alias string, v any) (Library, error) {
	lib := Library{Alias: alias}
	switch entry := v.(type) {
	case string:
		dep, ok := ParseCoordinate(entry)
		if !ok {
			return lib, fmt.Errorf("library '%s': invalid coordinate '%s'", alias, entry)
		}
		lib.Group, lib.Name, lib.Version = dep.Group, dep.Name, dep.Version
	case map[string]any:
		if module, ok := entry["module"].(string); ok {
			group, name, found := strings.Cut(module, ":")
			if !found {
				return lib, fmt.Errorf("library '%s': invalid module '%s'", alias, module)
			}
			lib.Group, lib.Name = group, name
		} else {
			lib.Group, _ = entry["group"].(string)
			lib.Name, _ = entry["name"].(string)
		}
		if lib.Group == "" || lib.Name == "" {
			return lib, fmt.Errorf("library '%s': missing group or name", alias)
		}
		switch version := entry["version"].(type) {
		case string:
			lib.Version = version
		case map[string]any:
			if ref, ok := version["ref"].(string); ok {
				lib.VersionRef = ref
			} else {
				lib.Version = versionString(version)
			}
		}
	default:
		return lib, fmt.Errorf("library '%s': unsupported entry type %T", alias, v)
	}
	return lib, nil
}

func parsePlugin(alias string, v any) (Plugin, error) {
	plugin := Plugin{Alias: alias}
	switch entry := v.(type) {
	case string:
		plugin.ID, plugin.Version, _ = strings.Cut(entry, ":")
	case map[string]any:
		plugin.ID, _ = entry["id"].(string)
		if version, ok := entry["version"].(string); ok {
			plugin.Version = version
		}
	default:
		return plugin, fmt.Errorf("plugin '%s': unsupported entry type %T", alias, v)
	}
	if plugin.ID == "" {
		return plugin, fmt.Errorf("plugin '%s': missing id", alias)
	}
	return plugin, nil
}

func pluginVersionRef(v any) (string, bool) {
	entry, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	version, ok := entry["version"].(map[string]any)
	if !ok {
		return "", false
	}
	ref, ok := version["ref"].(string)
	return ref, ok
}

// versionString flattens rich versions ({ strictly = "...", prefer = "..." }) to one string.
func versionString(v any) string {
	switch version := v.(type) {
	case string:
		return version
	case map[string]any:
		for _, key := range []string{"strictly", "require", "prefer"} {
			if s, ok := version[key].(string); ok {
				return s
			}
		}
	}
	return ""
}
