package probe

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
)

// Prefixes GitHub has stamped on tokens since 2021. Tokens issued
// before that are bare 40-char hex strings.
var githubTokenShapes = []struct {
	prefix string
	kind   string
}{
	{"github_pat_", "fine-grained personal access token"},
	{"ghp_", "classic personal access token"},
	{"gho_", "OAuth access token"},
	{"ghu_", "user-to-server token"},
	{"ghs_", "server-to-server token"},
	{"ghr_", "refresh token"},
}

var legacyGitHubToken = regexp.MustCompile(`^[0-9a-f]{40}$`)

// GitHubTokenProbe classifies the shape of GITHUB_TOKEN without
// calling the GitHub API, so the doctor stays useful offline and
// never spends rate limit.
type GitHubTokenProbe struct {
	settings *common.Settings
}

func NewGitHubTokenProbe(settings *common.Settings) *GitHubTokenProbe {
	return &GitHubTokenProbe{settings: settings}
}

func (p *GitHubTokenProbe) Name() string { return "github-token" }
func (p *GitHubTokenProbe) Kind() string { return "offline" }

func (p *GitHubTokenProbe) Check(ctx context.Context) Result {
	start := time.Now()
	token := p.settings.GitHub.Token
	if token == "" {
		return result(p, start, constants.ProbeSkipped,
			fmt.Sprintf("%s is not set", constants.EnvGitHubToken))
	}
	for _, shape := range githubTokenShapes {
		if strings.HasPrefix(token, shape.prefix) {
			return result(p, start, constants.ProbeOK,
				fmt.Sprintf("looks like a %s", shape.kind))
		}
	}
	if legacyGitHubToken.MatchString(token) {
		return result(p, start, constants.ProbeOK,
			"looks like a legacy hex token")
	}
	return result(p, start, constants.ProbeWarn,
		"does not match any known GitHub token format")
}
