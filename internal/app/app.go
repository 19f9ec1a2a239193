package app

import (
	"ble-locator.klederson.com/internal/config"
	"ble-locator.klederson.com/internal/locate"
	"ble-locator.klederson.com/internal/plot"
	"ble-locator.klederson.com/internal/report"
	"ble-locator.klederson.com/internal/scan"
	"ble-locator.klederson.com/internal/session"
	"ble-locator.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	sess *session.Session
}

// AppModel is the root Bubble Tea model for the locator.
type AppModel struct {
	width  int
	height int

	demoMode bool
	cfg      config.Config
	log      *zap.Logger

	shared *shared

	// Latest session state
	snap session.Snapshot
}

// New creates a new AppModel.
func New(cfg config.Config, demoMode bool, log *zap.Logger) AppModel {
	return AppModel{
		demoMode: demoMode,
		cfg:      cfg,
		log:      log,
		shared:   &shared{},
		snap:     session.Snapshot{Status: "Scanning for beacons..."},
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			if m.shared.sess != nil {
				m.shared.sess.Stop()
			}
			return m, tea.Quit
		}
		return m, nil

	case SnapshotMsg:
		m.snap = session.Snapshot(msg)
		return m, nil
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing BLE Locator..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	plotW := m.width * 3 / 5
	if plotW < 30 {
		plotW = 30
	}
	listW := m.width - plotW
	if listW < 15 {
		listW = 15
		plotW = m.width - listW
	}

	menuBar := ui.RenderMenuBar(m.width, m.demoMode)

	innerW := plotW - 4
	innerH := bodyH - 4
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	plotContent := plot.Render(innerW, innerH, m.cfg.Anchors, m.snap.Fix)
	legend := plot.RenderLegend(innerW)
	plotPanel := ui.RenderPlotPanel(plotW, bodyH, plotContent, legend)

	beaconList := ui.RenderBeaconList(m.snap.Beacons, m.distances(), listW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, m.snap.Status, len(m.snap.Beacons), m.snap.Fix)

	return ui.ComposeLayout(menuBar, plotPanel, beaconList, statusBar, m.width)
}

// distances estimates the range for every tracked beacon, for display.
func (m AppModel) distances() []float64 {
	out := make([]float64, len(m.snap.Beacons))
	for i, b := range m.snap.Beacons {
		out[i] = locate.Distance(float64(b.RSSI), m.cfg.Beacon.MeasuredPower, m.cfg.Beacon.PathLossExp)
	}
	return out
}

// StartSession builds the pipeline and starts scanning. Must be called
// before p.Run().
func (m *AppModel) StartSession(p *tea.Program) error {
	var scanner scan.Scanner
	if m.demoMode {
		scanner = scan.NewMockScanner(m.cfg.Anchors, m.cfg.Beacon.Filter,
			m.cfg.Beacon.MeasuredPower, m.cfg.Beacon.PathLossExp)
	} else {
		scanner = scan.NewBLEScanner()
	}

	sink := report.NewHTTPSink(m.cfg.Report.URL)
	scheduler := report.NewScheduler(m.cfg.Report.Interval, sink, m.log)

	m.shared.sess = session.New(m.cfg, scanner, scheduler, m.log, func(snap session.Snapshot) {
		p.Send(SnapshotMsg(snap))
	})
	return m.shared.sess.Start()
}
