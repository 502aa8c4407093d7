// Package validate provides the validate command.
package validate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap"
	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/internal/cmd/alerts"
	"github.com/agentstation/confmap/internal/cmd/output"
	"github.com/agentstation/confmap/pkg/errors"
)

// NewCommand creates the validate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Check the dataset for duplicate ids and bad deadlines",
		Long: `Validate reports deadlines with a duplicate or missing id, an id whose
year suffix does not match the year, and deadlines that are neither a
parseable date nor TBA. The command fails when any issue is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			issues, err := client.Validate()
			if err != nil {
				return err
			}
			if err := report(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), issues); err != nil {
				return err
			}
			if len(issues) > 0 {
				return errors.NewValidationError("dataset", len(issues), fmt.Sprintf("%d issues found", len(issues)))
			}
			return nil
		},
	}
}

// report writes one alert per issue kind, or the issue list for structured formats.
func report(w io.Writer, format output.Format, issues []confmap.Issue) error {
	if !format.IsTable() {
		if issues == nil {
			issues = []confmap.Issue{}
		}
		return output.NewFormatter(format).Format(w, issues)
	}

	writer := alerts.NewFormatWriter(w, format)
	if len(issues) == 0 {
		return writer.WriteAlert(alerts.NewSuccess("Dataset is valid"))
	}

	var kinds []confmap.IssueKind
	byKind := make(map[confmap.IssueKind][]string)
	for _, issue := range issues {
		if _, ok := byKind[issue.Kind]; !ok {
			kinds = append(kinds, issue.Kind)
		}
		byKind[issue.Kind] = append(byKind[issue.Kind], issue.String())
	}
	for _, kind := range kinds {
		alert := alerts.NewWarning(fmt.Sprintf("%s (%d)", kind, len(byKind[kind]))).WithDetails(byKind[kind]...)
		if err := writer.WriteAlert(alert); err != nil {
			return err
		}
	}
	return nil
}
