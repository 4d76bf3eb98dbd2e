package probe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
	"github.com/roastproject/roast-env/util"
)

// ExportPathProbe checks that ROAST_EXPORT_PATH names a directory
// this process can write to. Writability is proven by creating and
// removing a scratch file, since permission bits lie on some mounts.
type ExportPathProbe struct {
	settings *common.Settings
}

func NewExportPathProbe(settings *common.Settings) *ExportPathProbe {
	return &ExportPathProbe{settings: settings}
}

func (p *ExportPathProbe) Name() string { return "export-path" }
func (p *ExportPathProbe) Kind() string { return "filesystem" }

func (p *ExportPathProbe) Check(ctx context.Context) Result {
	start := time.Now()
	path := p.settings.Export.Path
	if path == "" {
		return result(p, start, constants.ProbeSkipped,
			fmt.Sprintf("%s is not set", constants.EnvExportPath))
	}
	if !util.FileExists(path) {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("%s does not exist", path))
	}
	if !util.IsDirectory(path) {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("%s is not a directory", path))
	}
	scratch, err := os.CreateTemp(path, ".roast-doctor-*")
	if err != nil {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("%s is not writable: %v", path, err))
	}
	name := scratch.Name()
	scratch.Close()
	os.Remove(name)
	return result(p, start, constants.ProbeOK,
		fmt.Sprintf("%s is writable", path))
}
