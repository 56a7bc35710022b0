package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"dogctl/resource"
)

const (
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputMarkdown = "markdown"
	OutputCSV      = "csv"
)

func ValidateOutputFormat(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML, OutputMarkdown, OutputCSV:
		return nil
	default:
		return ValidationError("invalid output format: use table, json, yaml, markdown, or csv", nil)
	}
}

// Column maps one table column to the cell it renders for a document.
type Column struct {
	Header string
	Value  func(doc resource.Document) string
}

// WriteDocuments renders a document list in the requested format. A jq
// expression reshapes the output arbitrarily, so filtered results are
// always rendered as JSON.
func WriteDocuments(command *cobra.Command, globalFlags *GlobalFlags, docs []resource.Document, columns []Column) error {
	if globalFlags != nil && strings.TrimSpace(globalFlags.JQ) != "" {
		return writeFiltered(command, globalFlags.JQ, documentsToValues(docs))
	}

	out := command.OutOrStdout()
	switch outputFormat(globalFlags) {
	case OutputJSON:
		return writeJSON(out, documentsToValues(docs))
	case OutputYAML:
		return writeYAML(out, documentsToValues(docs))
	case OutputMarkdown:
		return writeMarkdownTable(out, docs, columns)
	case OutputCSV:
		return writeCSVTable(out, docs, columns)
	default:
		return writeTextTable(out, docs, columns)
	}
}

// WriteDocument renders a single document; the table format shows
// sorted key/value pairs.
func WriteDocument(command *cobra.Command, globalFlags *GlobalFlags, doc resource.Document) error {
	if globalFlags != nil && strings.TrimSpace(globalFlags.JQ) != "" {
		normalized, err := resource.Normalize(doc)
		if err != nil {
			return err
		}
		return writeFiltered(command, globalFlags.JQ, normalized)
	}

	out := command.OutOrStdout()
	switch outputFormat(globalFlags) {
	case OutputJSON:
		return writeJSON(out, map[string]any(doc))
	case OutputYAML:
		return writeYAML(out, map[string]any(doc))
	default:
		return writeKeyValues(out, doc)
	}
}

// WriteText prints a plain line regardless of the structured formats.
func WriteText(command *cobra.Command, text string) error {
	_, err := fmt.Fprintln(command.OutOrStdout(), text)
	return err
}

// WriteValue renders an arbitrary value, falling back to JSON for the
// tabular formats.
func WriteValue(command *cobra.Command, globalFlags *GlobalFlags, value any) error {
	if globalFlags != nil && strings.TrimSpace(globalFlags.JQ) != "" {
		return writeFiltered(command, globalFlags.JQ, value)
	}

	out := command.OutOrStdout()
	switch outputFormat(globalFlags) {
	case OutputYAML:
		return writeYAML(out, value)
	default:
		return writeJSON(out, value)
	}
}

func outputFormat(globalFlags *GlobalFlags) string {
	if globalFlags == nil || globalFlags.Output == "" {
		return OutputTable
	}
	return globalFlags.Output
}

func writeFiltered(command *cobra.Command, expression string, value any) error {
	jqValue, err := toJQValue(value)
	if err != nil {
		return err
	}
	filtered, err := ApplyJQ(command.Context(), expression, jqValue)
	if err != nil {
		return err
	}
	return writeJSON(command.OutOrStdout(), filtered)
}

// gojq only accepts the JSON value domain, so values round-trip through
// encoding/json before filtering.
func toJQValue(value any) (any, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, ValidationError("value is not JSON-serializable", err)
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func documentsToValues(docs []resource.Document) []any {
	values := make([]any, 0, len(docs))
	for _, doc := range docs {
		values = append(values, map[string]any(doc))
	}
	return values
}

func writeJSON(out io.Writer, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func writeYAML(out io.Writer, value any) error {
	encoded, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, string(encoded))
	return err
}

func writeTextTable(out io.Writer, docs []resource.Document, columns []Column) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(out, "(no results)")
		return err
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, strings.ToUpper(column.Header))
	}
	_, _ = fmt.Fprintln(writer, strings.Join(headers, "\t"))

	for _, doc := range docs {
		_, _ = fmt.Fprintln(writer, strings.Join(renderRow(doc, columns), "\t"))
	}
	return writer.Flush()
}

func writeMarkdownTable(out io.Writer, docs []resource.Document, columns []Column) error {
	headers := make([]string, 0, len(columns))
	separators := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, column.Header)
		separators = append(separators, "---")
	}
	if _, err := fmt.Fprintf(out, "| %s |\n| %s |\n", strings.Join(headers, " | "), strings.Join(separators, " | ")); err != nil {
		return err
	}
	for _, doc := range docs {
		if _, err := fmt.Fprintf(out, "| %s |\n", strings.Join(renderRow(doc, columns), " | ")); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVTable(out io.Writer, docs []resource.Document, columns []Column) error {
	writer := csv.NewWriter(out)
	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, column.Header)
	}
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := writer.Write(renderRow(doc, columns)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func renderRow(doc resource.Document, columns []Column) []string {
	row := make([]string, 0, len(columns))
	for _, column := range columns {
		row = append(row, column.Value(doc))
	}
	return row
}

func writeKeyValues(out io.Writer, doc resource.Document) error {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, key := range keys {
		_, _ = fmt.Fprintf(writer, "%s\t%s\n", key, FieldString(doc, key))
	}
	return writer.Flush()
}

// FieldString renders one document field as a table cell. Nested
// structures collapse to compact JSON.
func FieldString(doc resource.Document, key string) string {
	value, found := doc[key]
	if !found || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case map[string]any, []any:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(encoded)
	default:
		return fmt.Sprint(typed)
	}
}
