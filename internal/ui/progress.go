// pattern: Imperative Shell

package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"groundwork/internal/provision"
)

// ErrCanceled is returned when the user aborts the progress display.
var ErrCanceled = errors.New("canceled")

type stepMsg provision.Step

type doneMsg provision.Result

// progressModel shows a spinner with the orchestrator's current step
// while provisioning runs in the background.
type progressModel struct {
	spinner  spinner.Model
	styles   *Styles
	branch   string
	step     provision.Step
	result   *provision.Result
	canceled bool
}

func newProgressModel(styles *Styles, branch string) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner()
	return progressModel{
		spinner: sp,
		styles:  styles,
		branch:  branch,
		step:    provision.StepResolving,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.step = provision.Step(msg)
		return m, nil
	case doneMsg:
		res := provision.Result(msg)
		m.result = &res
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.canceled = true
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m progressModel) View() string {
	if m.result != nil || m.canceled {
		return ""
	}
	return fmt.Sprintf("%s %s %s\n",
		m.spinner.View(),
		m.styles.Title().Render("provisioning "+m.branch),
		m.styles.Muted().Render("("+m.step.String()+")"),
	)
}

// RunProgress displays a spinner while run executes in the background.
// The run callback receives a step function suitable for
// Orchestrator.OnStep. Returns ErrCanceled if the user interrupts.
func RunProgress(styles *Styles, branch string, run func(onStep func(provision.Step)) provision.Result) (provision.Result, error) {
	p := tea.NewProgram(newProgressModel(styles, branch))

	go func() {
		res := run(func(s provision.Step) { p.Send(stepMsg(s)) })
		p.Send(doneMsg(res))
	}()

	out, err := p.Run()
	if err != nil {
		return provision.Result{}, err
	}

	m := out.(progressModel)
	if m.canceled || m.result == nil {
		return provision.Result{}, ErrCanceled
	}
	return *m.result, nil
}
