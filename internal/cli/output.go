package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/AgentOS/workspace/internal/shared/errs"
	"github.com/GriffinCanCode/AgentOS/workspace/internal/types"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

func validFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML, formatTOML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q, want text, json, yaml or toml: %w", format, errs.ErrInvalidConfiguration)
	}
}

// print renders a tool result. Text mode prints only the human part of a
// successful result; failures reach the user through the command error.
func (a *app) print(result *types.Result, text func(*types.Result) string) error {
	if a.output == formatText {
		if !result.Success || text == nil {
			return nil
		}
		return writeLine(a.out, text(result))
	}
	return a.encode(result)
}

// encode writes v in the structured output format. TOML documents must be
// tables, so v should be a struct or a map.
func (a *app) encode(v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch a.output {
	case formatYAML:
		data, err = yaml.Marshal(v)
	case formatTOML:
		data, err = toml.Marshal(v)
	default:
		data, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("encode %s output: %w", a.output, err)
	}
	_, err = a.out.Write(data)
	return err
}

func writeLine(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	if s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

// message returns the message field of a result
func message(result *types.Result) string {
	s, _ := result.Data["message"].(string)
	return s
}

// fileList prints one path per line
func fileList(result *types.Result) string {
	files, _ := result.Data["files"].([]string)
	return strings.Join(files, "\n")
}
