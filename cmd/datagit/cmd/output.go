package cmd

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/datagit/pkg/merge"
	"github.com/oneconcern/datagit/pkg/value"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// formatOr is the requested output format, or a default one
func formatOr(dflt string) string {
	if datagitFlags.root.format == "" {
		return dflt
	}
	return strings.ToLower(datagitFlags.root.format)
}

// render some structure as JSON or YAML
func render(w io.Writer, format string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatJSON:
		data, err = jsonAPI.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case formatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readValue parses the JSON value given as argument, or read from the --file flag
func readValue(in io.Reader, args []string) (value.Value, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case len(args) > 0 && datagitFlags.commit.file != "":
		return value.Null(), fmt.Errorf("a value may be given as an argument or with --file, not both")
	case len(args) > 0:
		data = []byte(args[0])
	case datagitFlags.commit.file == "-":
		data, err = io.ReadAll(in)
	case datagitFlags.commit.file != "":
		data, err = afero.ReadFile(appFs, datagitFlags.commit.file)
	default:
		return value.Null(), fmt.Errorf("a value is required, as an argument or with --file")
	}
	if err != nil {
		return value.Null(), err
	}
	return value.Parse(data)
}

func describeOutcome(out *merge.Outcome) map[string]interface{} {
	res := map[string]interface{}{
		"status":      out.Status.String(),
		"source":      out.Source.Oid.String(),
		"destination": out.Destination.Oid.String(),
	}
	if out.Shared != nil {
		res["shared"] = out.Shared.Oid.String()
	}
	if out.Commit != nil {
		res["commit"] = out.Commit.Oid.String()
	}
	if out.Message != "" {
		res["message"] = out.Message
	}
	if out.Conflict != nil {
		res["conflict"] = out.Conflict.Interface()
	}
	return res
}
