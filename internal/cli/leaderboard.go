package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/votecloud/votecloud/pkg/client"
	"github.com/votecloud/votecloud/pkg/score"
)

const (
	defaultServerURL    = "http://localhost:8000"
	defaultPollInterval = 2 * time.Second
	barWidth            = 20
)

// Table styles
var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableLeaderStyle = lipgloss.NewStyle().Foreground(colorPink).Bold(true)
	tableRowStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	tableZeroStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tableBarStyle    = lipgloss.NewStyle().Foreground(colorPink)
)

// leaderboardCommand creates the leaderboard command that follows a running
// server's standings.
func (c *CLI) leaderboardCommand() *cobra.Command {
	var (
		url      string
		interval time.Duration
		once     bool
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show live standings from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl := client.New(url, client.WithRetry(1, 0))
			if once {
				return printLeaderboard(cmd.Context(), c.ui(), cl)
			}
			m := NewLeaderboardModel(cl, interval)
			_, err := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", defaultServerURL, "server base URL")
	cmd.Flags().DurationVarP(&interval, "interval", "i", defaultPollInterval, "poll interval")
	cmd.Flags().BoolVar(&once, "once", false, "print the standings once and exit")

	return cmd
}

// printLeaderboard fetches the standings once and prints them as a table.
func printLeaderboard(ctx context.Context, ui printer, cl *client.Client) error {
	msg := fetchStandings(ctx, cl)
	if m, ok := msg.(standingsErrMsg); ok {
		return m.err
	}
	s := msg.(standingsMsg)
	ui.line(renderStandings(s.ranking, 0, len(s.ranking)))
	ui.detail("%d votes", s.total)
	return nil
}

// =============================================================================
// LeaderboardModel - live standings
// =============================================================================

type tickMsg time.Time

type standingsMsg struct {
	ranking score.RankedList
	total   int
	at      time.Time
}

type standingsErrMsg struct{ err error }

// LeaderboardModel is the bubbletea model for the live leaderboard.
type LeaderboardModel struct {
	Client   *client.Client
	Interval time.Duration
	Ranking  score.RankedList
	Total    int
	Updated  time.Time
	Err      error
	Height   int
	Offset   int
}

// NewLeaderboardModel creates a model polling cl every interval.
func NewLeaderboardModel(cl *client.Client, interval time.Duration) LeaderboardModel {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return LeaderboardModel{Client: cl, Interval: interval, Height: 15}
}

func (m LeaderboardModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			if m.Offset < len(m.Ranking)-m.Height {
				m.Offset++
			}
		case "r":
			return m, m.fetch()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())
	case standingsMsg:
		m.Ranking = msg.ranking
		m.Total = msg.total
		m.Updated = msg.at
		m.Err = nil
		m.Offset = min(m.Offset, max(len(m.Ranking)-m.Height, 0))
	case standingsErrMsg:
		m.Err = msg.err
	}
	return m, nil
}

func (m LeaderboardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Live Voting Results"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  r refresh  q quit"))
	b.WriteString("\n\n")

	if len(m.Ranking) == 0 && m.Err == nil {
		b.WriteString(StyleDim.Render("  waiting for " + m.Client.BaseURL() + " ..."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.Ranking) > 0 {
		b.WriteString(renderStandings(m.Ranking, m.Offset, m.Height))
		b.WriteString("\n\n")
	}

	status := fmt.Sprintf("  %d votes · %d names", m.Total, len(m.Ranking))
	if !m.Updated.IsZero() {
		status += " · updated " + m.Updated.Format("15:04:05")
	}
	b.WriteString(StyleDim.Render(status))
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(styleIconError.Render(iconError) + " " + StyleWarning.Render(m.Err.Error()))
	}
	return b.String()
}

func (m LeaderboardModel) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m LeaderboardModel) fetch() tea.Cmd {
	cl := m.Client
	timeout := m.Interval
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fetchStandings(ctx, cl)
	}
}

func fetchStandings(ctx context.Context, cl *client.Client) tea.Msg {
	ranking, err := cl.Ranking(ctx)
	if err != nil {
		return standingsErrMsg{err: err}
	}
	total, err := cl.TotalVotes(ctx)
	if err != nil {
		return standingsErrMsg{err: err}
	}
	return standingsMsg{ranking: ranking, total: total, at: time.Now()}
}

// =============================================================================
// Helpers
// =============================================================================

// renderStandings draws rows [offset, offset+height) of ranking as a table.
func renderStandings(ranking score.RankedList, offset, height int) string {
	ranks := competitionRanks(ranking)
	top := 0
	if w, ok := ranking.Winner(); ok {
		top = w.Score
	}

	end := min(offset+height, len(ranking))
	offset = min(offset, end)
	rows := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		e := ranking[i]
		rows = append(rows, []string{
			strconv.Itoa(ranks[i]),
			e.Label,
			strconv.Itoa(e.Score),
			scoreBar(e.Score, top),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Name", "Votes", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			e := ranking[offset+row]
			switch {
			case col == 3:
				return tableBarStyle
			case e.Score > 0 && e.Score == top:
				return tableLeaderStyle
			case e.Score == 0:
				return tableZeroStyle
			default:
				return tableRowStyle
			}
		})
	return t.Render()
}

// competitionRanks assigns 1-based ranks where equal scores share a rank
// and the next distinct score skips ahead ("1, 2, 2, 4").
func competitionRanks(ranking score.RankedList) []int {
	ranks := make([]int, len(ranking))
	for i, e := range ranking {
		if i > 0 && e.Score == ranking[i-1].Score {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

// scoreBar draws a bar proportional to score/top.
func scoreBar(score, top int) string {
	if top <= 0 || score <= 0 {
		return ""
	}
	n := max(score*barWidth/top, 1)
	return strings.Repeat("█", n)
}
