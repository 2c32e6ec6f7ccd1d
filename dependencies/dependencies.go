package dependencies

import (
	"fmt"
	"strings"

	coreConfig "github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/lujsom/booknest-build/commonutils"
	"github.com/lujsom/booknest-build/config"
	"github.com/lujsom/booknest-build/gradle"
)

const DefaultDisplayLimit = 50

type DependenciesCommand struct {
	projectDir   string
	module       string
	format       string
	displayLimit int
	// Set after Run
	report *Report
}

func NewDependenciesCommand() *DependenciesCommand {
	return &DependenciesCommand{projectDir: ".", format: commonutils.FormatTable, displayLimit: DefaultDisplayLimit}
}

func (dc *DependenciesCommand) SetProjectDir(projectDir string) *DependenciesCommand {
	dc.projectDir = projectDir
	return dc
}

func (dc *DependenciesCommand) SetModule(module string) *DependenciesCommand {
	dc.module = module
	return dc
}

func (dc *DependenciesCommand) SetFormat(format string) *DependenciesCommand {
	dc.format = format
	return dc
}

func (dc *DependenciesCommand) SetDisplayLimit(displayLimit int) *DependenciesCommand {
	dc.displayLimit = displayLimit
	return dc
}

func (dc *DependenciesCommand) Report() *Report {
	return dc.report
}

func (dc *DependenciesCommand) CommandName() string {
	return "booknest_dependencies"
}

func (dc *DependenciesCommand) ServerDetails() (*coreConfig.ServerDetails, error) {
	return nil, nil
}

func (dc *DependenciesCommand) Run() error {
	if !commonutils.IsValidFormat(dc.format) {
		return errorutils.CheckErrorf("unsupported format '%s'. Supported formats are 'table' and 'json'", dc.format)
	}
	moduleName := dc.module
	if moduleName == "" {
		cfg, err := config.Load(dc.projectDir)
		if err != nil {
			return err
		}
		moduleName = cfg.Gradle.Module
	}
	module, err := gradle.LoadModule(dc.projectDir, moduleName)
	if err != nil {
		return err
	}
	dc.report = Resolve(module)

	writer := commonutils.NewResultsWriter(dc.format)
	if writer.IsJson() {
		return writer.PrintJson(ToBuildInfoModule(dc.report, module.Android), "No dependencies declared")
	}
	return writer.PrintTables(dc.tables()...)
}

func (dc *DependenciesCommand) tables() []commonutils.Table {
	deps := commonutils.Table{
		Title:        fmt.Sprintf("Dependencies (%s)", dc.report.Module),
		Header:       []string{"Module", "Version"},
		EmptyMessage: "No dependencies declared",
		Noun:         "dependencies",
		DisplayLimit: dc.displayLimit,
	}
	for _, dep := range dc.report.Dependencies {
		deps.Rows = append(deps.Rows, []string{dep.Module, describeVersion(dep)})
	}
	tables := []commonutils.Table{deps}
	if len(dc.report.Unresolved) > 0 {
		unresolved := commonutils.Table{Title: "Unresolved catalog aliases", Header: []string{"Alias", "Catalog"}}
		for _, alias := range dc.report.Unresolved {
			unresolved.Rows = append(unresolved.Rows, []string{alias, gradle.VersionCatalogPath})
		}
		tables = append(tables, unresolved)
	}
	return tables
}

func describeVersion(dep Resolved) string {
	var version string
	switch {
	case dep.Source == SourceProject:
		version = "project"
	case dep.Version != "":
		version = dep.Version
	case dep.ManagedBy != "":
		version = "managed by " + dep.ManagedBy
	default:
		version = "unspecified"
	}
	if len(dep.Evicted) > 0 {
		version += " (over " + strings.Join(dep.Evicted, ", ") + ")"
	}
	return version + " [" + strings.Join(dep.Configurations, ", ") + "]"
}
