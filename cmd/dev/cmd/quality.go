package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gophertribe/devtool/test"
	"github.com/spf13/cobra"
)

type qualityStep struct {
	use   string
	short string
	run   func() error
}

var qualitySteps = []qualityStep{
	{use: "test", short: "Run unit tests", run: func() error { return test.Test() }},
	{use: "lint", short: "Run linters", run: func() error { return test.Lint() }},
	{use: "integration-test", short: "Run hardware integration tests (needs a TCS3400 on the bus)", run: func() error { return test.Integ() }},
}

// QualityCmds returns test, lint and integration-test commands.
func QualityCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(qualitySteps))
	for _, step := range qualitySteps {
		cmds = append(cmds, &cobra.Command{
			Use:   step.use,
			Short: step.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				slog.Info("running quality step", "step", step.use)
				if err := step.run(); err != nil {
					return fmt.Errorf("%s failed: %w", step.use, err)
				}
				return nil
			},
		})
	}
	return cmds
}
