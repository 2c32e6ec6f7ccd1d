package verify

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/lujsom/booknest-build/commonutils"
	"github.com/lujsom/booknest-build/verify/model"
)

// Google API keys are "AIza" followed by 35 URL-safe characters.
var apiKeyRe = regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)

const maxScannedFileSize = 1 << 20

var (
	scannedExtensions = []string{".java", ".kt", ".kts", ".gradle", ".xml", ".go", ".json", ".properties"}
	skippedDirs       = []string{gitDir, ".gradle", ".idea", "build", "node_modules"}
)

// scanKeyLiterals walks the project and reports API key literals in source files that
// git does not ignore.
func scanKeyLiterals(wt *worktree, projectDir string) ([]model.Finding, error) {
	start, ok := wt.rel(projectDir)
	if !ok {
		return nil, errorutils.CheckErrorf("%s is outside of %s", projectDir, wt.root)
	}
	var findings []model.Finding
	err := util.Walk(wt.fs, start, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Debug("Skipping", path+":", err.Error())
			return nil
		}
		if info.IsDir() {
			if path != start && (slices.Contains(skippedDirs, info.Name()) || wt.ignored(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(scannedExtensions, strings.ToLower(filepath.Ext(path))) ||
			info.Size() > maxScannedFileSize || wt.ignored(path, false) {
			return nil
		}
		content, err := util.ReadFile(wt.fs, path)
		if err != nil {
			log.Debug("Skipping unreadable file", path+":", err.Error())
			return nil
		}
		findings = append(findings, findKeys(filepath.ToSlash(path), content)...)
		return nil
	})
	return findings, errorutils.CheckError(err)
}

func findKeys(path string, content []byte) []model.Finding {
	var findings []model.Finding
	for i, line := range bytes.Split(content, []byte("\n")) {
		for _, match := range apiKeyRe.FindAll(line, -1) {
			findings = append(findings, model.Finding{
				Path:  path,
				Line:  i + 1,
				Match: commonutils.MaskSecret(string(match)),
			})
		}
	}
	return findings
}
