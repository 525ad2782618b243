package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AntoineGS/tidyseal/internal/config"
	"github.com/AntoineGS/tidyseal/internal/shell"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxSuggestions = 3

func runInit(out io.Writer, path string) error {
	// Expand ~ if present
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", absPath)
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absPath)
	}

	if _, err := os.Stat(filepath.Join(absPath, config.RepoConfigFile)); os.IsNotExist(err) {
		fmt.Fprintf(out, "Warning: %s not found in %s\n", config.RepoConfigFile, absPath)
		fmt.Fprintln(out, "The built-in permission catalog will be used.")
	}

	appCfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	appCfg.ConfigDir = absPath

	if err := config.SaveAppConfig(appCfg); err != nil {
		return fmt.Errorf("saving app config: %w", err)
	}

	fmt.Fprintf(out, "App configuration saved to %s\n", config.AppConfigPath())
	fmt.Fprintf(out, "Configurations directory: %s\n", absPath)

	return nil
}

// writeList prints the applications matching query, one per line. With no
// match it prints fuzzy suggestions instead.
func writeList(out io.Writer, apps []config.Application, query string) {
	matched := 0
	for _, app := range apps {
		if !shell.Matches(query, app.ID) {
			continue
		}
		matched++
		fmt.Fprintf(out, "%-40s %s\n", app.ID, app.DisplayName())
	}

	if matched > 0 {
		return
	}

	if query == "" {
		fmt.Fprintln(out, "No applications found")
		return
	}

	fmt.Fprintf(out, "No applications match %q\n", query)
	if s := suggest(query, applicationIDs(apps)); len(s) > 0 {
		fmt.Fprintf(out, "Did you mean %s?\n", joinQuoted(s))
	}
}

// writeShow prints permissions grouped like the panel. Overridden values are
// marked with '*', unsupported ones with '!'.
func writeShow(out io.Writer, title string, perms []config.Permission, defaults map[string]config.Value) {
	fmt.Fprintln(out, title)

	lastGroup := ""
	for _, p := range perms {
		if p.Group != lastGroup {
			fmt.Fprintln(out)
			if p.GroupDescription != "" {
				fmt.Fprintf(out, "[%s] %s\n", p.Group, p.GroupDescription)
			} else {
				fmt.Fprintf(out, "[%s]\n", p.Group)
			}
			lastGroup = p.Group
		}

		mark := " "
		switch {
		case !p.Supported:
			mark = "!"
		case p.Value != defaults[p.Property]:
			mark = "*"
		}

		fmt.Fprintf(out, "%s %-28s %s\n", mark, p.Property, formatValue(p.Value))
	}
}

func formatValue(v config.Value) string {
	if v.Kind == config.KindText && v.Text == "" {
		return `""`
	}

	return v.String()
}

// renderValues renders one property=value line per permission.
func renderValues(perms []config.Permission, value func(config.Permission) config.Value) string {
	var sb strings.Builder
	for _, p := range perms {
		fmt.Fprintf(&sb, "%s=%s\n", p.Property, value(p).String())
	}

	return sb.String()
}

// generateDiff renders a line diff between the default and effective values.
func generateDiff(appID string, perms []config.Permission, defaults map[string]config.Value) string {
	before := renderValues(perms, func(p config.Permission) config.Value { return defaults[p.Property] })
	after := renderValues(perms, func(p config.Permission) config.Value { return p.Value })

	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	if len(dmp.PatchMake(before, diffs)) == 0 {
		return fmt.Sprintf("%s uses default permissions.\n", appID)
	}

	var sb strings.Builder
	sb.WriteString("--- defaults\n")
	sb.WriteString(fmt.Sprintf("+++ %s\n", appID))

	for _, diff := range diffs {
		lines := strings.Split(diff.Text, "\n")
		// Remove trailing empty string from split
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString("- " + line + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString("+ " + line + "\n")
			case diffmatchpatch.DiffEqual:
				// unchanged lines are omitted
			}
		}
	}

	return sb.String()
}

// suggest ranks candidates fuzzily against query, best first.
func suggest(query string, candidates []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(query, candidates)
	sort.Sort(ranks)

	var out []string
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.Target)
	}

	return out
}

func applicationIDs(apps []config.Application) []string {
	ids := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.ID
	}

	return ids
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}

	return strings.Join(quoted, " or ")
}
