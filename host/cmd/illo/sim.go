package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"illo/core"
	"illo/host/sim"
	"illo/host/web"
)

type simOptions struct {
	scenario string
	devices  int
	drop     float64
	dup      float64
	stale    float64
	seed     int64
	stepMs   int
	web      string
	udp      bool
	port     int
}

func newSimCommand() *cobra.Command {
	var opts simOptions
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Simulate a dance floor in the terminal",
		Long: `sim boots simulated toys running the real firmware logic against a
lossy loopback radio. Keys drive the selected toy's buttons and slide
switch. A scenario file, when given, hot-reloads on save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.scenario, "scenario", "", "scenario YAML file, hot-reloads on save")
	f.IntVar(&opts.devices, "devices", 3, "toy count for the default scenario")
	f.Float64Var(&opts.drop, "drop", 0, "sighting drop probability, 0 to 1")
	f.Float64Var(&opts.dup, "dup", 0, "sighting duplication probability, 0 to 1")
	f.Float64Var(&opts.stale, "stale", 0, "stale sighting probability, 0 to 1")
	f.Int64Var(&opts.seed, "seed", 0, "loss model seed, 0 picks one")
	f.IntVar(&opts.stepMs, "step", 0, "virtual milliseconds per tick")
	f.StringVar(&opts.web, "web", "", "serve a browser viewer on this address, e.g. :8080")
	f.BoolVar(&opts.udp, "udp", false, "bridge the floor onto the LAN")
	f.IntVar(&opts.port, "port", sim.DefaultUDPPort, "UDP port for the bridge")
	return cmd
}

func runSim(cmd *cobra.Command, opts simOptions) error {
	logs := sim.NewLogBuffer(64)
	core.SetLogWriter(logs.Append)

	var bridge *sim.Bridge
	build := func() (*sim.Sim, error) {
		sc, err := loadScenario(opts)
		if err != nil {
			return nil, err
		}
		applyOverrides(cmd, opts, sc)
		s := sim.New(sc)
		// Booting controllers set this from their own debug flags; the
		// simulator wants the log pane live regardless.
		core.SetLogEnabled(true)
		if opts.udp {
			if bridge != nil {
				_ = bridge.Close()
			}
			b, err := sim.NewBridge(s.Medium, opts.port)
			if err != nil {
				return nil, err
			}
			bridge = b
		}
		return s, nil
	}

	s, err := build()
	if err != nil {
		return err
	}

	var hub *web.Hub
	if opts.web != "" {
		hub = web.NewHub()
		go func() {
			if err := hub.Serve(opts.web); err != nil {
				core.Logln("[WEB] server stopped: " + err.Error())
			}
		}()
	}

	mopts := sim.ModelOptions{Hub: hub, Logs: logs}
	if opts.scenario != "" {
		mopts.ScenarioPath = opts.scenario
		mopts.Rebuild = build
	}
	model, err := sim.NewModel(s, mopts)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	if bridge != nil {
		_ = bridge.Close()
	}
	return err
}

func loadScenario(opts simOptions) (*sim.Scenario, error) {
	if opts.scenario != "" {
		return sim.LoadScenario(opts.scenario)
	}
	return sim.DefaultScenario(opts.devices), nil
}

// applyOverrides lets explicit flags win over the scenario file.
func applyOverrides(cmd *cobra.Command, opts simOptions, sc *sim.Scenario) {
	f := cmd.Flags()
	if f.Changed("drop") {
		sc.Medium.Drop = opts.drop
	}
	if f.Changed("dup") {
		sc.Medium.Dup = opts.dup
	}
	if f.Changed("stale") {
		sc.Medium.Stale = opts.stale
	}
	if f.Changed("seed") {
		sc.Medium.Seed = opts.seed
	}
	if f.Changed("step") {
		sc.StepMs = opts.stepMs
	}
}
