package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
)

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	watchErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	watchHelpStyle  = lipgloss.NewStyle().Faint(true)
	watchBoxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// runWatch renders a terminal dashboard that polls the host API for the
// resident plugin set.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "host API address")
	interval := fs.Duration("interval", 2*time.Second, "poll interval")
	fs.Parse(args)

	m := newWatchModel(*addr, *interval)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type watchTickMsg time.Time

type watchDataMsg struct {
	rows []table.Row
	err  error
}

type watchModel struct {
	addr     string
	interval time.Duration
	table    table.Model
	lastErr  error
	lastPoll time.Time
}

func newWatchModel(addr string, interval time.Duration) watchModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 16},
			{Title: "Version", Width: 10},
			{Title: "Commands", Width: 40},
			{Title: "Fingerprint", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return watchModel{addr: addr, interval: interval, table: t}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.poll, m.tick())
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m watchModel) poll() tea.Msg {
	body, err := apiGet(m.addr, "/v1/plugins")
	if err != nil {
		return watchDataMsg{err: err}
	}

	var rows []table.Row
	gjson.GetBytes(body, "plugins").ForEach(func(_, p gjson.Result) bool {
		var cmds []string
		for _, c := range p.Get("commands").Array() {
			cmds = append(cmds, c.String())
		}
		fp := p.Get("fingerprint").String()
		if len(fp) > 12 {
			fp = fp[:12]
		}
		rows = append(rows, table.Row{
			p.Get("name").String(),
			p.Get("version").String(),
			strings.Join(cmds, ", "),
			fp,
		})
		return true
	})
	return watchDataMsg{rows: rows}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.poll
		}
	case watchTickMsg:
		return m, tea.Batch(m.poll, m.tick())
	case watchDataMsg:
		m.lastPoll = time.Now()
		m.lastErr = msg.err
		if msg.err == nil {
			m.table.SetRows(msg.rows)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(watchTitleStyle.Render("Deskulpt plugins") + "  " +
		watchHelpStyle.Render(m.addr) + "\n\n")
	b.WriteString(watchBoxStyle.Render(m.table.View()) + "\n")

	if m.lastErr != nil {
		b.WriteString(watchErrStyle.Render("error: "+m.lastErr.Error()) + "\n")
	} else if !m.lastPoll.IsZero() {
		b.WriteString(watchHelpStyle.Render("updated "+m.lastPoll.Format("15:04:05")+
			"  plugins: "+strconv.Itoa(len(m.table.Rows()))) + "\n")
	}
	b.WriteString(watchHelpStyle.Render("q quit • r refresh"))
	return b.String()
}
