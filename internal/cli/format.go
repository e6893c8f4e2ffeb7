package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tasklist/internal/task"
	"github.com/idilsaglam/tasklist/internal/ui"
)

type listFormat string

const (
	formatText listFormat = "text"
	formatJSON listFormat = "json"
	formatYAML listFormat = "yaml"
)

func parseFormat(s string) (listFormat, error) {
	switch f := listFormat(s); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// writeList prints the list in stored order.
func writeList(w io.Writer, s ui.Styles, list task.List, f listFormat) error {
	if list == nil {
		list = task.List{}
	}
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		return nil
	case formatYAML:
		b, err := yaml.Marshal(list)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(w, "[%s] %s: %s\n", s.Mark(t.Completed), t.IDLabel(), t.Desc)
	}
	return nil
}
