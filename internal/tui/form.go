package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/snapwm/internal/config"
)

// fields holds the form values as the widgets edit them.
type fields struct {
	workspaces     string
	gap            string
	border         string
	barHeight      string
	paddingTop     string
	paddingBottom  string
	paddingLeft    string
	paddingRight   string
	modifier       string
	edgeSnap       bool
	smartPlacement bool
	focused        string
	unfocused      string
	urgent         string
	preview        string
	metaClasses    string
	logLevel       string
}

var modifierOptions = []huh.Option[string]{
	huh.NewOption("Super (Mod4)", "Mod4"),
	huh.NewOption("Alt (Mod1)", "Mod1"),
	huh.NewOption("Control", "Control"),
}

var logLevelOptions = []huh.Option[string]{
	huh.NewOption("debug", "debug"),
	huh.NewOption("info", "info"),
	huh.NewOption("warning", "warning"),
	huh.NewOption("error", "error"),
}

func fieldsFrom(cfg *config.Config) *fields {
	return &fields{
		workspaces:     strconv.Itoa(cfg.Workspaces),
		gap:            strconv.Itoa(cfg.Gap),
		border:         strconv.Itoa(cfg.Border),
		barHeight:      strconv.Itoa(cfg.BarHeight),
		paddingTop:     strconv.Itoa(cfg.Padding.Top),
		paddingBottom:  strconv.Itoa(cfg.Padding.Bottom),
		paddingLeft:    strconv.Itoa(cfg.Padding.Left),
		paddingRight:   strconv.Itoa(cfg.Padding.Right),
		modifier:       cfg.Modifier,
		edgeSnap:       cfg.EdgeSnap,
		smartPlacement: cfg.SmartPlacement,
		focused:        cfg.Colors.Focused,
		unfocused:      cfg.Colors.Unfocused,
		urgent:         cfg.Colors.Urgent,
		preview:        cfg.Colors.Preview,
		metaClasses:    strings.Join(cfg.MetaWindowClasses, ", "),
		logLevel:       cfg.LogLevel,
	}
}

// apply writes the fields into cfg. Values were checked by the form.
func (f *fields) apply(cfg *config.Config) {
	atoi := func(s string, dst *int) {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*dst = v
		}
	}
	atoi(f.workspaces, &cfg.Workspaces)
	atoi(f.gap, &cfg.Gap)
	atoi(f.border, &cfg.Border)
	atoi(f.barHeight, &cfg.BarHeight)
	atoi(f.paddingTop, &cfg.Padding.Top)
	atoi(f.paddingBottom, &cfg.Padding.Bottom)
	atoi(f.paddingLeft, &cfg.Padding.Left)
	atoi(f.paddingRight, &cfg.Padding.Right)
	cfg.Modifier = f.modifier
	cfg.EdgeSnap = f.edgeSnap
	cfg.SmartPlacement = f.smartPlacement
	cfg.Colors.Focused = strings.TrimSpace(f.focused)
	cfg.Colors.Unfocused = strings.TrimSpace(f.unfocused)
	cfg.Colors.Urgent = strings.TrimSpace(f.urgent)
	cfg.Colors.Preview = strings.TrimSpace(f.preview)
	cfg.MetaWindowClasses = splitList(f.metaClasses)
	cfg.LogLevel = f.logLevel
}

// withCurrent adds value to the options when none has it, so that a
// setting written by hand is not replaced by the first option.
func withCurrent(opts []huh.Option[string], value string) []huh.Option[string] {
	for _, o := range opts {
		if o.Value == value {
			return opts
		}
	}
	return append(slices.Clone(opts), huh.NewOption(value, value))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateCount(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v < lo || (hi > 0 && v > hi) {
			if hi > 0 {
				return fmt.Errorf("must be between %d and %d", lo, hi)
			}
			return fmt.Errorf("must be >= %d", lo)
		}
		return nil
	}
}

func validateColor(s string) error {
	_, err := config.ParseColor(strings.TrimSpace(s))
	return err
}

func pixelInput(key, title string, value *string) *huh.Input {
	return huh.NewInput().
		Key(key).
		Title(title).
		Validate(validateCount(0, 0)).
		Value(value)
}

func colorInput(key, title string, value *string) *huh.Input {
	return huh.NewInput().
		Key(key).
		Title(title).
		Description("#rrggbb").
		Validate(validateColor).
		Value(value)
}

func (f *fields) form(width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("workspaces").
				Title("Workspaces").
				Description("Workspaces per monitor; changes apply after a restart").
				Validate(validateCount(1, 32)).
				Value(&f.workspaces),
			pixelInput("gap", "Gap", &f.gap).
				Description("Pixels between snapped windows and the work area edges"),
			pixelInput("border", "Border", &f.border),
			pixelInput("bar_height", "Bar height", &f.barHeight).
				Description("Space kept free at the top of the primary monitor"),
			huh.NewSelect[string]().
				Key("modifier").
				Title("Drag modifier").
				Description("Held to move windows with button 1 and resize them with button 3").
				Options(withCurrent(modifierOptions, f.modifier)...).
				Value(&f.modifier),
		).Title("General"),
		huh.NewGroup(
			pixelInput("padding.top", "Padding: top", &f.paddingTop),
			pixelInput("padding.bottom", "Padding: bottom", &f.paddingBottom),
			pixelInput("padding.left", "Padding: left", &f.paddingLeft),
			pixelInput("padding.right", "Padding: right", &f.paddingRight),
		).Title("Padding"),
		huh.NewGroup(
			huh.NewConfirm().
				Key("edge_snap").
				Title("Snap at screen edges").
				Description("Snap a dragged window when the pointer touches an edge").
				Value(&f.edgeSnap),
			huh.NewConfirm().
				Key("smart_placement").
				Title("Smart placement").
				Description("Place new windows where they cover the least").
				Value(&f.smartPlacement),
			huh.NewInput().
				Key("meta_window_classes").
				Title("Meta window classes").
				Description("Comma separated WM_CLASS names shown on every workspace").
				Value(&f.metaClasses),
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log level").
				Options(logLevelOptions...).
				Value(&f.logLevel),
		).Title("Behavior"),
		huh.NewGroup(
			colorInput("colors.focused", "Focused border", &f.focused),
			colorInput("colors.unfocused", "Unfocused border", &f.unfocused),
			colorInput("colors.urgent", "Urgent border", &f.urgent),
			colorInput("colors.preview", "Snap preview", &f.preview),
		).Title("Colors"),
	).WithWidth(width).WithShowHelp(true).WithShowErrors(true)
}
