package commands

import (
	"strconv"

	coreConfig "github.com/jfrog/jfrog-cli-core/v2/utils/config"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/lujsom/booknest-build/buildconfig/model"
	"github.com/lujsom/booknest-build/commonutils"
)

type ShowCommand struct {
	projectDir string
	options    Options
	format     string
	reveal     bool
	// Set after Run
	fields []model.Field
}

type showResult struct {
	Namespace string        `json:"namespace,omitempty"`
	BuildType string        `json:"buildType"`
	Fields    []model.Field `json:"fields"`
	Skipped   []string      `json:"skipped,omitempty"`
}

func NewShowCommand() *ShowCommand {
	return &ShowCommand{projectDir: ".", format: commonutils.FormatTable}
}

func (sc *ShowCommand) SetProjectDir(projectDir string) *ShowCommand {
	sc.projectDir = projectDir
	return sc
}

func (sc *ShowCommand) SetOptions(options Options) *ShowCommand {
	sc.options = options
	return sc
}

func (sc *ShowCommand) SetFormat(format string) *ShowCommand {
	sc.format = format
	return sc
}

func (sc *ShowCommand) SetReveal(reveal bool) *ShowCommand {
	sc.reveal = reveal
	return sc
}

// Fields returns the fields printed by the last run, masked unless reveal is set.
func (sc *ShowCommand) Fields() []model.Field {
	return sc.fields
}

func (sc *ShowCommand) CommandName() string {
	return "booknest_show"
}

func (sc *ShowCommand) ServerDetails() (*coreConfig.ServerDetails, error) {
	return nil, nil
}

func (sc *ShowCommand) Run() error {
	if !commonutils.IsValidFormat(sc.format) {
		return errorutils.CheckErrorf("unsupported format '%s'. Supported formats are 'table' and 'json'", sc.format)
	}
	cfg, err := loadConfig(sc.projectDir, sc.options)
	if err != nil {
		return err
	}
	resolved, err := ResolveBuildConfig(sc.projectDir, cfg)
	if err != nil {
		return err
	}

	sc.fields = resolved.BuildConfig.AllFields()
	if !sc.reveal {
		for i := range sc.fields {
			if sc.fields[i].Secret {
				sc.fields[i].Value = commonutils.MaskSecret(sc.fields[i].Value)
			}
		}
	}

	writer := commonutils.NewResultsWriter(sc.format)
	if writer.IsJson() {
		result := showResult{
			Namespace: resolved.BuildConfig.Namespace,
			BuildType: resolved.BuildConfig.BuildType,
			Fields:    sc.fields,
		}
		for _, skipped := range resolved.Skipped {
			result.Skipped = append(result.Skipped, skipped.Name)
		}
		return writer.PrintJson(result, "No build config fields")
	}

	fieldsTable := commonutils.Table{
		Title:        "Build config (" + resolved.BuildConfig.BuildType + ")",
		Header:       []string{"Field", "Value"},
		EmptyMessage: "No build config fields",
	}
	for _, f := range sc.fields {
		value := f.Value
		if f.Type == model.String {
			value = strconv.Quote(value)
		}
		fieldsTable.Rows = append(fieldsTable.Rows, []string{string(f.Type) + " " + f.Name, value})
	}
	tables := []commonutils.Table{fieldsTable}
	if len(resolved.Skipped) > 0 {
		skippedTable := commonutils.Table{
			Title:  "Computed by the build script",
			Header: []string{"Field", "Expression"},
		}
		for _, f := range resolved.Skipped {
			skippedTable.Rows = append(skippedTable.Rows, []string{f.Name, f.Expression})
		}
		tables = append(tables, skippedTable)
	}
	return writer.PrintTables(tables...)
}
