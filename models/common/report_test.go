package common_test

import (
	"testing"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
	"github.com/stretchr/testify/assert"
)

func TestReportEmpty(t *testing.T) {
	report := &common.Report{}
	assert.True(t, report.OK())
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
	assert.Equal(t, "ok", report.String())
}

func TestReportAccumulates(t *testing.T) {
	report := &common.Report{}
	report.AddError(constants.EnvDBPort, "must be a port number, not %q", "abc")
	report.AddWarning(constants.EnvAWSRegion, "%s is not set", constants.EnvAWSRegion)

	assert.False(t, report.OK())
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	assert.Len(t, report.Issues, 2)

	assert.Equal(t, constants.SeverityError, report.Issues[0].Severity)
	assert.Equal(t, constants.EnvDBPort, report.Issues[0].Key)
	assert.Equal(t, `must be a port number, not "abc"`, report.Issues[0].Message)

	expected := "[error] ROAST_DB_PORT: must be a port number, not \"abc\"\n" +
		"[warning] AWS_REGION: AWS_REGION is not set"
	assert.Equal(t, expected, report.String())
}
