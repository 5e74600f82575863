package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/snapwm/internal/config"
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

// diffContextLines is how many unchanged lines surround each change.
const diffContextLines = 2

// computeDiffLines compares the YAML form of two configurations. It
// returns nil when nothing changed.
func computeDiffLines(original, current *config.Config) ([]diffLine, error) {
	origBytes, err := yaml.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	currBytes, err := yaml.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	origStr := strings.TrimSpace(string(origBytes))
	currStr := strings.TrimSpace(string(currBytes))
	if origStr == currStr {
		return nil, nil
	}
	return lcsDiff(strings.Split(origStr, "\n"), strings.Split(currStr, "\n")), nil
}

// lcsDiff computes a line diff from the longest common subsequence.
func lcsDiff(a, b []string) []diffLine {
	m, n := len(a), len(b)
	tbl := make([][]int, m+1)
	for i := range tbl {
		tbl[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				tbl[i][j] = tbl[i+1][j+1] + 1
			case tbl[i+1][j] >= tbl[i][j+1]:
				tbl[i][j] = tbl[i+1][j]
			default:
				tbl[i][j] = tbl[i][j+1]
			}
		}
	}

	var all []diffLine
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j]:
			all = append(all, diffLine{kind: diffContext, text: a[i]})
			i++
			j++
		case tbl[i+1][j] >= tbl[i][j+1]:
			all = append(all, diffLine{kind: diffRemoved, text: a[i]})
			i++
		default:
			all = append(all, diffLine{kind: diffAdded, text: b[j]})
			j++
		}
	}
	for ; i < m; i++ {
		all = append(all, diffLine{kind: diffRemoved, text: a[i]})
	}
	for ; j < n; j++ {
		all = append(all, diffLine{kind: diffAdded, text: b[j]})
	}
	return filterDiffContext(all, diffContextLines)
}

// filterDiffContext keeps changed lines and ctx lines around them. Skipped
// runs are shown as "...".
func filterDiffContext(lines []diffLine, ctx int) []diffLine {
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.kind == diffContext {
			continue
		}
		changed = true
		for j := max(i-ctx, 0); j <= min(i+ctx, len(lines)-1); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return nil
	}

	var result []diffLine
	prevKept := true
	for i, l := range lines {
		if !keep[i] {
			prevKept = false
			continue
		}
		if !prevKept {
			result = append(result, diffLine{kind: diffContext, text: "..."})
		}
		result = append(result, l)
		prevKept = true
	}
	return result
}

// renderDiff formats the diff with a sign column, colored when styled.
func renderDiff(lines []diffLine, styled bool) string {
	addStyle := lipgloss.NewStyle()
	rmStyle := lipgloss.NewStyle()
	ctxStyle := lipgloss.NewStyle()
	if styled {
		addStyle = addStyle.Foreground(lipgloss.Color("42"))
		rmStyle = rmStyle.Foreground(lipgloss.Color("196"))
		ctxStyle = ctxStyle.Foreground(lipgloss.Color("245"))
	}

	out := make([]string, 0, len(lines))
	for _, dl := range lines {
		switch dl.kind {
		case diffAdded:
			out = append(out, addStyle.Render("+ "+dl.text))
		case diffRemoved:
			out = append(out, rmStyle.Render("- "+dl.text))
		default:
			out = append(out, ctxStyle.Render("  "+dl.text))
		}
	}
	return strings.Join(out, "\n")
}
