package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"gopkg.in/yaml.v3"
)

type FormatType string

const (
	Pretty FormatType = "pretty"
	Text   FormatType = "text"
	JSON   FormatType = "json"
	YAML   FormatType = "yaml"
	Table  FormatType = "table"
)

type Formattable interface {
	String() string
	Pretty() string
	TableHeaders() []string
	TableRow() []string
}

// FormatTable renders one table row per item, with the first item's headers.
func FormatTable[T Formattable](items []T) string {
	if len(items) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, item.TableRow())
	}
	return renderTable(items[0].TableHeaders(), rows)
}

// FormatSingleOutput renders data in the given format.
func FormatSingleOutput[T Formattable](data T, format FormatType) (string, error) {
	switch format {
	case Text:
		return data.String(), nil
	case Pretty:
		return data.Pretty(), nil
	case JSON:
		j, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(j), nil
	case YAML:
		y, err := yaml.Marshal(data)
		if err != nil {
			return "", err
		}
		return string(y), nil
	case Table:
		return renderTable(data.TableHeaders(), [][]string{data.TableRow()}), nil
	default:
		return "", fmt.Errorf("unknown format: %v", format)
	}
}

func renderTable(headers []string, rows [][]string) string {
	buffer := new(bytes.Buffer)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader(headers)
	table.SetBorder(true)
	table.AppendBulk(rows)
	table.Render()
	return buffer.String()
}

// WriteOutput writes content to path, or to w when path is empty. A trailing
// newline is added when missing.
func WriteOutput(w io.Writer, path, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// ParseFormatType converts a string format to a FormatType.
func ParseFormatType(format string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(format)); f {
	case Pretty, Text, JSON, YAML, Table:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}
