// Package static renders non-interactive tables for devcontainer listings.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/aniongithub/devcontainer-tools/internal/docker"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/ui/styles"
)

// InstanceHeaders are the columns of InstanceRows.
var InstanceHeaders = []string{"", "NAME", "SERVICE", "COMPOSE", "SHUTDOWN", "ID"}

// ContainerHeaders are the columns of ContainerRow.
var ContainerHeaders = []string{"PROJECT", "SERVICE", "STATE", "CONTAINER", "STATUS"}

// RenderTable renders a borderless table with a bold header row.
// It returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		})

	return t.String() + "\n"
}

// InstanceRows builds the rows of the instance listing. A "(none)" row is
// appended when no entry is live.
func InstanceRows(entries []lifecycle.Entry) [][]string {
	var rows [][]string
	live := false
	for _, e := range entries {
		live = live || e.Active
		name := e.Name
		if e.Active {
			name += " (active)"
		}
		rows = append(rows, []string{
			styles.FormatActive(e.Active),
			name,
			e.Service,
			strings.Join(e.ComposeFiles, ","),
			e.ShutdownAction,
			ShortID(e.ID),
		})
	}
	if !live {
		rows = append(rows, []string{styles.FormatActive(true), "(none)", "", "", "", ""})
	}
	return rows
}

// ContainerRow builds the single status row of a service container.
func ContainerRow(st docker.Status) []string {
	return []string{
		st.Project,
		st.Service,
		styles.FormatContainerState(string(st.State)),
		ShortID(st.ContainerID),
		st.Detail,
	}
}

// ShortID truncates an id to the 12 characters docker prints.
func ShortID(id string) string {
	return id[:min(12, len(id))]
}
