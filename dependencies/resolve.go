package dependencies

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jfrog/build-info-go/entities"
	"github.com/jfrog/gofrog/version"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/gradle"
	"golang.org/x/mod/semver"
)

const (
	SourceDeclared = "declared"
	SourceCatalog  = "catalog"
	SourceProject  = "project"

	bundlesPrefix = "libs.bundles."
)

// Resolved is one module of the dependency report, after catalog expansion and
// conflict resolution.
type Resolved struct {
	Module         string   `json:"module"`
	Version        string   `json:"version,omitempty"`
	Configurations []string `json:"configurations"`
	Source         string   `json:"source"`
	Platform       bool     `json:"platform,omitempty"`
	CatalogAlias   string   `json:"catalogAlias,omitempty"`
	// ManagedBy is the platform (BOM) that supplies the version of a dependency declared without one.
	ManagedBy string `json:"managedBy,omitempty"`
	// Evicted lists the lower versions that lost conflict resolution.
	Evicted []string `json:"evicted,omitempty"`
}

func (r Resolved) Coordinate() string {
	if r.Version == "" {
		return r.Module
	}
	return r.Module + ":" + r.Version
}

type Report struct {
	Module       string     `json:"module"`
	Dependencies []Resolved `json:"dependencies"`
	Unresolved   []string   `json:"unresolved,omitempty"`
}

// Resolve expands the declared dependencies of module. Version catalog aliases are looked
// up in the project catalog, dependencies declared without a version are attributed to a
// declared platform, and a module declared several times keeps its highest version.
func Resolve(module *gradle.Module) *Report {
	report := &Report{Module: module.Name}
	var platforms []string
	index := make(map[string]int)

	add := func(dep Resolved) {
		i, ok := index[dep.Module]
		if !ok {
			index[dep.Module] = len(report.Dependencies)
			report.Dependencies = append(report.Dependencies, dep)
			return
		}
		merge(&report.Dependencies[i], dep)
	}

	for _, dep := range module.Dependencies {
		switch {
		case dep.ProjectPath != "":
			add(Resolved{Module: dep.ProjectPath, Configurations: []string{dep.Configuration}, Source: SourceProject})
		case dep.CatalogAlias != "":
			libs, ok := lookupAlias(module.Catalog, dep.CatalogAlias)
			if !ok {
				log.Warn("Version catalog alias", dep.CatalogAlias, "could not be resolved")
				report.Unresolved = append(report.Unresolved, dep.CatalogAlias)
				continue
			}
			for _, lib := range libs {
				resolved := Resolved{
					Module:         lib.Group + ":" + lib.Name,
					Version:        lib.Version,
					Configurations: []string{dep.Configuration},
					Source:         SourceCatalog,
					Platform:       dep.Platform,
					CatalogAlias:   dep.CatalogAlias,
				}
				if dep.Platform {
					platforms = append(platforms, resolved.Coordinate())
				}
				add(resolved)
			}
		default:
			resolved := Resolved{
				Module:         dep.Module(),
				Version:        dep.Version,
				Configurations: []string{dep.Configuration},
				Source:         SourceDeclared,
				Platform:       dep.Platform,
			}
			if dep.Platform {
				platforms = append(platforms, resolved.Coordinate())
			}
			add(resolved)
		}
	}

	for i := range report.Dependencies {
		dep := &report.Dependencies[i]
		if dep.Version == "" && !dep.Platform && dep.Source != SourceProject {
			dep.ManagedBy = managingPlatform(dep.Module, platforms)
		}
	}
	return report
}

func lookupAlias(catalog *gradle.Catalog, alias string) ([]gradle.Library, bool) {
	if catalog == nil {
		return nil, false
	}
	if strings.HasPrefix(alias, bundlesPrefix) {
		return catalog.Bundle(alias)
	}
	lib, ok := catalog.Library(alias)
	if !ok {
		return nil, false
	}
	return []gradle.Library{lib}, true
}

// merge folds a later declaration of the same module into existing.
func merge(existing *Resolved, dep Resolved) {
	for _, conf := range dep.Configurations {
		if !slices.Contains(existing.Configurations, conf) {
			existing.Configurations = append(existing.Configurations, conf)
		}
	}
	existing.Platform = existing.Platform || dep.Platform
	switch {
	case dep.Version == "" || dep.Version == existing.Version:
	case existing.Version == "":
		existing.Version, existing.Source, existing.CatalogAlias = dep.Version, dep.Source, dep.CatalogAlias
	case CompareVersions(dep.Version, existing.Version) > 0:
		existing.Evicted = append(existing.Evicted, existing.Version)
		existing.Version, existing.Source, existing.CatalogAlias = dep.Version, dep.Source, dep.CatalogAlias
	default:
		existing.Evicted = append(existing.Evicted, dep.Version)
	}
}

// managingPlatform picks the platform of the same group, falling back to the first one.
func managingPlatform(module string, platforms []string) string {
	if len(platforms) == 0 {
		return ""
	}
	group, _, _ := strings.Cut(module, ":")
	for _, platform := range platforms {
		if strings.HasPrefix(platform, group+":") {
			return platform
		}
	}
	return platforms[0]
}

// CompareVersions orders two dependency versions. Versions that are not semantic versions
// (e.g. 1.0.0.1) are compared dot-separated segment by segment, numerically.
func CompareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}
	// Compare reports how its argument orders against the receiver.
	return version.NewVersion(b).Compare(a)
}

// ToBuildInfoModule converts the report into a build-info module of type gradle.
func ToBuildInfoModule(report *Report, android *gradle.AndroidConfig) entities.Module {
	id := report.Module
	if android != nil && android.Namespace != "" {
		id = fmt.Sprintf("%s:%s", android.Namespace, report.Module)
		if android.VersionName != "" {
			id += ":" + android.VersionName
		}
	}
	module := entities.Module{
		Id:           id,
		Type:         entities.Gradle,
		Dependencies: []entities.Dependency{},
	}
	for _, dep := range report.Dependencies {
		module.Dependencies = append(module.Dependencies, entities.Dependency{
			Id:     dep.Coordinate(),
			Scopes: dep.Configurations,
		})
	}
	return module
}
