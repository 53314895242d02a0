package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"

	"github.com/firefly-engine/firefly/core"
	"github.com/firefly-engine/firefly/fetch"
	"github.com/firefly-engine/firefly/fs"
	"github.com/firefly-engine/firefly/logger"
	"github.com/firefly-engine/firefly/proc"
	"github.com/firefly-engine/firefly/utils"
)

type screen int

const (
	Welcome screen = iota
	UIOverlayChoice
	TemplateChoice
	DesktopBundleChoice
	Generating
	Finished
	Failed
)

type planMsg core.Plan

type genResultMsg struct{ err error }

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	checkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	crossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBA08"))
)

var stepLabels = map[core.StepName]struct{ present, past string }{
	core.UpdateManifest:         {"Updating gleam.toml.", "Updated gleam.toml."},
	core.InstallDevTooling:      {"Installing dev tooling.", "Installed dev tooling."},
	core.InstallRuntimePackages: {"Installing runtime packages.", "Installed runtime packages."},
	core.WriteIgnoreFile:        {"Writing ignore file.", "Wrote ignore file."},
	core.WriteMainSourceFile:    {"Writing main source file.", "Wrote main source file."},
	core.DetectPlatform:         {"Detecting platform.", "Detected platform."},
	core.DownloadSDK:            {"Downloading player SDK.", "Downloaded player SDK."},
	core.SetupPlatformBundles:   {"Setting up platform bundles.", "Set up platform bundles."},
}

type wizardModel struct {
	textInput  textinput.Model
	spinner    spinner.Model
	screen     screen
	choices    *core.WizardChoices
	plan       core.Plan
	failReason string
	publisher  *CliPlanPublisher
	resultChan chan error
	ctx        context.Context
	cancel     context.CancelFunc
	logger     logger.Logger
}

func newWizardModel(f newFlags) (wizardModel, error) {
	logger.Init()
	log := logger.Get()
	log.Debug("Initializing Firefly wizard")

	choices := core.DefaultChoices()
	if f.name != "" {
		choices.ProjectName = utils.FormatProjectName(f.name)
	}

	ti := textinput.New()
	ti.Placeholder = choices.ProjectName
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))

	ctx, cancel := context.WithCancel(context.Background())

	m := wizardModel{
		textInput: ti,
		spinner:   s,
		screen:    Welcome,
		choices:   choices,
		publisher: NewCliPlanPublisher(log),
		ctx:       ctx,
		cancel:    cancel,
		logger:    log,
	}
	return m, nil
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case planMsg:
		m.plan = core.Plan(msg)
		return m, m.listenForPlan
	case genResultMsg:
		return m.handleGenerationResult(msg.err)
	default:
		if m.screen == Generating {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m wizardModel) View() string {
	switch m.screen {
	case Welcome:
		return fmt.Sprintf(
			"%s\n\nProject name: %s\n\n%s",
			titleStyle.Render("Welcome to Firefly."),
			m.textInput.View(),
			faintStyle.Render("(press enter to continue or esc to quit)"),
		)
	case UIOverlayChoice:
		return m.choicePrompt("Include the Lustre UI overlay? (y/n)")
	case TemplateChoice:
		return m.choicePrompt("Select a starter template:\n  [1] none\n  [2] 2D\n  [3] 3D\n  [4] physics")
	case DesktopBundleChoice:
		return m.choicePrompt("Bundle the desktop player for Linux, macOS and Windows? (y/n)")
	case Generating:
		return m.planView()
	case Finished:
		name := titleStyle.Render(m.choices.ProjectName)
		return fmt.Sprintf("%s\n\nProject %s is ready.\n%s\n",
			m.planView(), name, faintStyle.Render("(press any key to exit)"))
	case Failed:
		reason := crossStyle.Render(m.failReason)
		return fmt.Sprintf("%s\n\nGeneration failed: %s\n%s\n",
			m.planView(), reason, faintStyle.Render("(press any key to exit)"))
	default:
		m.logger.Error("An error occurred")
		return "An error occurred."
	}
}

func (m wizardModel) choicePrompt(question string) string {
	return fmt.Sprintf("%s\n\n%s", question, faintStyle.Render("(esc to quit)"))
}

// planView renders every step of the latest plan snapshot, in plan order,
// with one glyph per status.
func (m wizardModel) planView() string {
	enumerator := func(items list.Items, i int) string {
		if i >= len(m.plan) {
			return " "
		}
		switch m.plan[i].State {
		case core.StepComplete:
			return checkStyle.Render("✓")
		case core.StepFailed:
			return crossStyle.Render("✗")
		case core.StepInProgress:
			return m.spinner.View()
		default:
			return faintStyle.Render("•")
		}
	}

	l := list.New().Enumerator(enumerator)
	for _, step := range m.plan {
		labels, ok := stepLabels[step.Name]
		if !ok {
			labels.present = string(step.Name)
			labels.past = string(step.Name)
		}
		switch step.State {
		case core.StepComplete:
			l.Item(labels.past)
		case core.StepFailed:
			l.Item(fmt.Sprintf("%s (%s)", labels.present, step.Reason))
		case core.StepPending:
			l.Item(faintStyle.Render(labels.present))
		default:
			l.Item(labels.present)
		}
	}
	return fmt.Sprint(l)
}

// handleKeyPress handles key presses for the current screen.
func (m *wizardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
		return m.handleQuit()
	}

	switch m.screen {
	case Welcome:
		return m.handleWelcome(msg)
	case UIOverlayChoice:
		return m.handleUIOverlayChoice(msg)
	case TemplateChoice:
		return m.handleTemplateChoice(msg)
	case DesktopBundleChoice:
		return m.handleDesktopBundleChoice(msg)
	case Finished, Failed:
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m *wizardModel) handleWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	if v := strings.TrimSpace(m.textInput.Value()); v != "" {
		m.choices.ProjectName = utils.FormatProjectName(v)
	}
	m.screen = UIOverlayChoice
	echo := faintStyle.Render(fmt.Sprintf("> %s", m.choices.ProjectName))
	return m, tea.Printf("%s", echo)
}

func (m *wizardModel) handleUIOverlayChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.choices.IncludeUIOverlay = true
	case "n":
		m.choices.IncludeUIOverlay = false
	default:
		return m, nil
	}
	m.screen = TemplateChoice
	return m, nil
}

func (m *wizardModel) handleTemplateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.choices.Template = core.TemplateNone
	case "2":
		m.choices.Template = core.Template2D
	case "3":
		m.choices.Template = core.Template3D
	case "4":
		m.choices.Template = core.TemplatePhysics
	default:
		return m, nil
	}
	m.screen = DesktopBundleChoice
	return m, nil
}

// handleDesktopBundleChoice records the last answer, freezing the choices,
// and hands the plan to the sequencer.
func (m *wizardModel) handleDesktopBundleChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.choices.BundleDesktop = true
	case "n":
		m.choices.BundleDesktop = false
	default:
		return m, nil
	}
	m.screen = Generating
	return m, m.startGeneration()
}

// startGeneration builds the gateway against the working directory and runs
// the sequencer off the UI goroutine. The wizard only ever reads the plan
// snapshots it is sent; the sequencer owns the plan.
func (m *wizardModel) startGeneration() tea.Cmd {
	cwd, err := os.Getwd()
	if err != nil {
		m.failReason = err.Error()
		m.screen = Failed
		return nil
	}

	osFs := fs.NewOsFileSystem()
	gateway := core.NewLocalGateway(
		osFs,
		proc.NewExecRunner(),
		fetch.NewHTTPDownloader(osFs),
		cwd,
		runtime.GOOS,
		runtime.GOARCH,
		m.logger,
	)
	sequencer := core.NewSequencer(m.choices, gateway, m.publisher, m.logger)
	m.plan = sequencer.Plan()

	resultChan := make(chan error, 1)
	m.resultChan = resultChan
	ctx := m.ctx
	go func() {
		resultChan <- sequencer.Execute(ctx)
	}()

	return tea.Batch(m.spinner.Tick, m.listenForPlan, m.listenForResult)
}

func (m *wizardModel) listenForPlan() tea.Msg {
	return planMsg(<-m.publisher.planChan)
}

func (m *wizardModel) listenForResult() tea.Msg {
	return genResultMsg{err: <-m.resultChan}
}

// handleGenerationResult drains any queued snapshots so the terminal screen
// shows the plan exactly as the sequencer last observed it.
func (m *wizardModel) handleGenerationResult(err error) (tea.Model, tea.Cmd) {
	for {
		select {
		case plan := <-m.publisher.planChan:
			m.plan = plan
		default:
			if err != nil {
				m.failReason = err.Error()
				m.screen = Failed
			} else {
				m.screen = Finished
			}
			return m, nil
		}
	}
}

func (m *wizardModel) handleQuit() (tea.Model, tea.Cmd) {
	m.logger.Debug("User exited the wizard")
	m.cancel()
	message := warningStyle.Render("Interrupted. Exiting...")
	return m, tea.Sequence(tea.Printf("%s", message), tea.Quit)
}
