// ABOUTME: Command-line client for the binaural engine control API
// ABOUTME: Sends commands over REST, watches live events, discovers engines
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Binaural-Lab/binaural-go/internal/client"
	"github.com/Binaural-Lab/binaural-go/internal/discovery"
)

var (
	addr     = flag.String("addr", envOr("BINAURAL_ADDR", "localhost:8090"), "Engine address (host:port)")
	discover = flag.Bool("discover", false, "Find an engine over mDNS instead of using -addr")
	timeout  = flag.Duration("timeout", 5*time.Second, "Request and discovery timeout")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: binauralctl [flags] <command> [args]

Commands:
  status             Show engine state, parameters and elapsed time
  start              Start playback
  stop               Stop playback and reset the session timer
  pause              Pause playback, keeping the session timer
  toggle             Toggle playback
  carrier <hz>       Set the carrier frequency
  beat <hz>          Set the beat frequency
  volume <percent>   Set the output volume
  band <name>        Snap the beat to a brainwave band
  bands              List the brainwave bands
  preset <name>      Apply a named preset
  presets            List the available presets
  watch              Stream engine events until interrupted
  discover           List engines advertised on the local network

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	cmd := flag.Arg(0)

	if cmd == "discover" {
		runDiscover()
		return
	}

	target := *addr
	if *discover {
		engines, err := discovery.Find(*timeout)
		if err != nil {
			fatal(fmt.Sprintf("discovery failed: %v", err))
		}
		if len(engines) == 0 {
			fatal("no engines found on the local network")
		}
		target = engines[0].Addr()
		fmt.Printf("Using %s (%s)\n", engines[0].Name, target)
	}

	c := client.New(target, *timeout)

	var err error
	switch cmd {
	case "status":
		err = printResult(c.Status())
	case "start":
		err = printResult(c.Start())
	case "stop":
		err = printResult(c.Stop())
	case "pause":
		err = printResult(c.Pause())
	case "toggle":
		err = printResult(c.Toggle())
	case "carrier", "beat":
		err = runFrequency(c, cmd, flag.Arg(1))
	case "volume":
		err = runVolume(c, flag.Arg(1))
	case "band":
		err = runBand(c, flag.Arg(1))
	case "bands":
		err = runBands(c)
	case "preset":
		err = runPreset(c, flag.Arg(1))
	case "presets":
		err = runPresets(c)
	case "watch":
		err = runWatch(target)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err.Error())
	}
}

func runFrequency(c *client.Client, which, raw string) error {
	hz, err := parseFloatArg(which, raw)
	if err != nil {
		return err
	}
	if which == "carrier" {
		return printResult(c.SetCarrier(hz))
	}
	return printResult(c.SetBeat(hz))
}

func runVolume(c *client.Client, raw string) error {
	percent, err := parseFloatArg("volume", raw)
	if err != nil {
		return err
	}
	return printResult(c.SetVolume(percent))
}

func runBand(c *client.Client, name string) error {
	if name == "" {
		return fmt.Errorf("band requires a name, try 'binauralctl bands'")
	}
	result, err := c.SetBand(name)
	if err != nil {
		return err
	}
	printSnapshot(result.Snapshot)
	return nil
}

func runBands(c *client.Client) error {
	bands, err := c.Bands()
	if err != nil {
		return err
	}
	for _, b := range bands {
		fmt.Printf("%-8s %6.1f-%-6.1f Hz   default beat %.1f Hz\n",
			b.Name, b.MinHz, b.MaxHz, b.DefaultBeatHz)
	}
	return nil
}

func runPreset(c *client.Client, name string) error {
	if name == "" {
		return fmt.Errorf("preset requires a name, try 'binauralctl presets'")
	}
	result, err := c.SetPreset(name)
	if err != nil {
		return err
	}
	if !result.Applied {
		return fmt.Errorf("unknown preset: %s", name)
	}
	printSnapshot(result.Snapshot)
	return nil
}

func runPresets(c *client.Client) error {
	presets, err := c.Presets()
	if err != nil {
		return err
	}
	for _, p := range presets {
		fmt.Printf("%-12s carrier %.1f Hz, beat %.1f Hz, volume %.0f%%\n",
			p.Name, p.CarrierHz, p.BeatHz, p.VolumePercent)
	}
	return nil
}

func runWatch(target string) error {
	es := client.NewEventStream(target)
	if err := es.Connect(); err != nil {
		return fmt.Errorf("cannot connect to %s: %w", target, err)
	}
	defer es.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-es.Events:
			printEvent(ev)
		case <-es.Done():
			return nil
		case <-interrupt:
			return nil
		}
	}
}

func runDiscover() {
	fmt.Printf("Browsing for engines (%s)...\n", *timeout)
	engines, err := discovery.Find(*timeout)
	if err != nil {
		fatal(fmt.Sprintf("discovery failed: %v", err))
	}
	if len(engines) == 0 {
		fmt.Println("No engines found")
		return
	}
	for _, e := range engines {
		fmt.Printf("%-24s %-21s version %s\n", e.Name, e.Addr(), e.Version)
	}
}

func printResult(snap client.Snapshot, err error) error {
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}

func printSnapshot(s client.Snapshot) {
	fmt.Printf("State:    %s\n", s.State)
	fmt.Printf("Carrier:  %.1f Hz\n", s.Params.CarrierHz)
	fmt.Printf("Beat:     %.1f Hz  (L %.1f Hz / R %.1f Hz)\n", s.Params.BeatHz, s.LeftHz, s.RightHz)
	fmt.Printf("Volume:   %.0f%%\n", s.Params.VolumePercent)
	fmt.Printf("Elapsed:  %s\n", s.Elapsed)
	if s.SessionID != "" {
		fmt.Printf("Session:  %s\n", s.SessionID)
	}
}

func printEvent(ev client.Event) {
	ts := time.Now().Format("15:04:05")
	switch ev.Type {
	case "state":
		if ev.Params == nil {
			return
		}
		fmt.Printf("%s  state    %-8s carrier=%.1f beat=%.1f volume=%.0f elapsed=%s\n",
			ts, ev.State, ev.Params.CarrierHz, ev.Params.BeatHz, ev.Params.VolumePercent, ev.Elapsed)
	case "params":
		if ev.Params == nil {
			return
		}
		fmt.Printf("%s  params   carrier=%.1f beat=%.1f (L %.1f / R %.1f) volume=%.0f\n",
			ts, ev.Params.CarrierHz, ev.Params.BeatHz, ev.LeftHz, ev.RightHz, ev.Params.VolumePercent)
	case "elapsed":
		fmt.Printf("%s  elapsed  %s\n", ts, ev.Elapsed)
	case "notice":
		fmt.Printf("%s  notice   [%s] %s\n", ts, ev.Level, ev.Notice)
	}
}

func parseFloatArg(name, raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s requires a numeric argument", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return v, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "binauralctl: "+msg)
	os.Exit(1)
}
