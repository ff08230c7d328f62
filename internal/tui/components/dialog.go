package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
)

// RenderConfirm renders a yes/no question centered in the given area
func RenderConfirm(width, height int, title, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render(title),
		body,
		"",
		styles.Hint("[Y]", "Yes")+"      "+styles.Hint("[N]", "No"),
	)
	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}

// RenderAlert renders a blocking message dismissed with enter or esc
func RenderAlert(width, height int, title, body string) string {
	bodyStyle := lipgloss.NewStyle().Foreground(styles.White)
	if width > 20 {
		bodyStyle = bodyStyle.MaxWidth(width - 10).Width(min(lipgloss.Width(body), width-10))
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Foreground(styles.Red).Render(title),
		bodyStyle.Render(body),
		"",
		styles.DimStyle.Render("enter to dismiss"),
	)
	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		styles.AlertStyle.Render(content))
}
