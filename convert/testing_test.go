package convert

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"bylaws/common"
	"bylaws/config"
	"bylaws/state"
)

const sampleSource = `title: Bylaws of the Example Society
sections:
  - id: pre
    type: preamble
    title: Preamble
    content: We, the members, adopt these bylaws.
  - id: art-1
    type: article
    title: Name and Purpose
    order: 1
  - id: sec-1-1
    type: section
    parent_id: art-1
    title: Name
    order: 1
    content: The name shall be **Example Society**.
  - id: sec-1-2
    type: section
    parent_id: art-1
    title: Purpose
    order: 2
    content: |
      The purposes are:
      1. to meet
      2. to *discuss*
  - id: art-2
    type: article
    title: Members
    order: 2
  - id: sec-2-1
    type: section
    parent_id: art-2
    title: Eligibility
    order: 1
    content: Any person may apply.
  - id: amd-1
    type: amendment
    title: First Amendment
    order: 1
    content: Article II was amended.
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func prepareSample(t *testing.T, ctx context.Context) *Document {
	t.Helper()
	d, err := prepare(ctx, []byte(sampleSource), "bylaws/sample.yaml", common.OutputFmtHtml, state.EnvFromContext(ctx).Log)
	if err != nil {
		t.Fatalf("prepare() error = %v", err)
	}
	return d
}
