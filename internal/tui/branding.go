package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/cinemaddict/internal/config"
)

const AppName = "cinemaddict"

// LogoLines draw a strip of film.
var LogoLines = []string{
	"▛▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▜",
	"▌ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▐",
	"▌ C I N E M A D D I C T ▐",
	"▌ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▪ ▐",
	"▙▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▟",
}

// BannerColors cycle over the banner lines.
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FFE800"),
	lipgloss.Color("#FFC93C"),
	lipgloss.Color("#FF9A3C"),
	lipgloss.Color("#FFC93C"),
	lipgloss.Color("#FFE800"),
}

var (
	PrimaryColor   = lipgloss.Color("#FFE800") // marquee yellow
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	BackgroundColor = lipgloss.Color("#1A1A2E")
	SurfaceColor    = lipgloss.Color("#16213E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#4ADE80")
)

var (
	LogoStyle          lipgloss.Style
	TitleStyle         lipgloss.Style
	HeaderStyle        lipgloss.Style
	StatusBarStyle     lipgloss.Style
	ActiveStyle        lipgloss.Style
	InactiveStyle      lipgloss.Style
	SelectedItemStyle  lipgloss.Style
	HelpStyle          lipgloss.Style
	RatingStyle        lipgloss.Style
	ErrorMessageStyle  lipgloss.Style
	SeparatorStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	EmptyStyle         = lipgloss.NewStyle()
)

func init() {
	buildStyles()
}

// ApplyTheme replaces the palette with the configured colors. Empty
// entries keep the built-in color.
func ApplyTheme(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&BackgroundColor, c.Background)
	set(&SurfaceColor, c.Surface)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	ActiveStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		Underline(true)

	InactiveStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	RatingStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

func GetWelcomeMessage() string {
	return GetCompactBanner("Loading movies…")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("Film Catalog %s", versionTag))
	} else {
		lines = append(lines, "Film Catalog")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderChars := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	borderStyle := lipgloss.NewStyle().
		Border(borderChars).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := borderStyle.Render(banner)

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		Render(output))

	separator := lipgloss.NewStyle().
		Foreground(AccentColor).
		Render("▪ ▫ ▪ ▫ ▪")

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(separator))
}
