package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pager styles
var (
	pagerStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
	pagerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// PagerModel - Interactive man page viewer
// =============================================================================

// PagerModel is a bubbletea model that scrolls a pre-rendered man page the
// way man(1) does with less.
type PagerModel struct {
	Title  string
	Lines  []string
	Offset int
	Width  int
	Height int
}

// NewPagerModel splits page into lines. The height is replaced by the
// terminal's once the first WindowSizeMsg arrives.
func NewPagerModel(title, page string) PagerModel {
	return PagerModel{
		Title:  title,
		Lines:  strings.Split(strings.TrimRight(page, "\n"), "\n"),
		Width:  80,
		Height: 24,
	}
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

// body is the number of page lines visible above the status line.
func (m PagerModel) body() int {
	return max(m.Height-1, 1)
}

func (m PagerModel) maxOffset() int {
	return max(len(m.Lines)-m.body(), 0)
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Offset--
		case "down", "j", "enter":
			m.Offset++
		case "pgup", "b":
			m.Offset -= m.body()
		case "pgdown", " ", "f":
			m.Offset += m.body()
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.Offset -= 3
		case tea.MouseButtonWheelDown:
			m.Offset += 3
		}
	}
	m.Offset = min(max(m.Offset, 0), m.maxOffset())
	return m, nil
}

func (m PagerModel) View() string {
	var b strings.Builder
	end := min(m.Offset+m.body(), len(m.Lines))
	for _, line := range m.Lines[m.Offset:end] {
		b.WriteString(ansi.Truncate(line, m.Width, ""))
		b.WriteString("\n")
	}
	for i := end - m.Offset; i < m.body(); i++ {
		b.WriteString("~\n")
	}
	b.WriteString(m.status())
	return b.String()
}

func (m PagerModel) status() string {
	pos := "All"
	switch {
	case m.maxOffset() == 0:
	case m.Offset == 0:
		pos = "Top"
	case m.Offset >= m.maxOffset():
		pos = "Bot"
	default:
		pos = fmt.Sprintf("%d%%", m.Offset*100/m.maxOffset())
	}
	line := pagerTitleStyle.Render(m.Title) + pagerStatusStyle.Render(fmt.Sprintf(" line %d/%d (%s)  q to quit", m.Offset+1, len(m.Lines), pos))
	return ansi.Truncate(line, m.Width, "")
}

// runPager shows page full-screen until the user quits.
func runPager(title, page string) error {
	p := tea.NewProgram(NewPagerModel(title, page), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
