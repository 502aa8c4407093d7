package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/confmap/internal/cmd/output"
)

// FormatWriter writes alerts in different output formats.
type FormatWriter struct {
	writer io.Writer
	format output.Format
	color  bool
}

// NewFormatWriter creates a new FormatWriter for the specified format.
// Text alerts are colored only on a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{writer: w, format: format, color: isTerminal(w)}
}

// WriteAlerts writes alerts in order and stops at the first error.
func (fw *FormatWriter) WriteAlerts(alerts []*Alert) error {
	for _, a := range alerts {
		if err := fw.WriteAlert(a); err != nil {
			return err
		}
	}
	return nil
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		encoder := json.NewEncoder(fw.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(toAlertData(alert))
	case output.FormatYAML:
		data, err := yaml.Marshal(toAlertData(alert))
		if err != nil {
			return err
		}
		_, err = fw.writer.Write(data)
		return err
	default:
		return fw.writeText(alert)
	}
}

type alertData struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func toAlertData(alert *Alert) alertData {
	data := alertData{
		Level:   alert.Level.String(),
		Message: alert.Message,
		Details: alert.Details,
	}
	if alert.Err != nil {
		data.Error = alert.Err.Error()
	}
	return data
}

func (fw *FormatWriter) writeText(alert *Alert) error {
	message := alert.String()
	if fw.color {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(fw.writer, message); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.writer, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
