// ABOUTME: LAN discovery of running engines over mDNS
// ABOUTME: The engine advertises its control port; clients browse for it
package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/version"
)

// ServiceType is the mDNS service engines register under.
const ServiceType = "_binaural._tcp"

// browseInterval bounds each browse pass.
const browseInterval = 3 * time.Second

// Config holds discovery configuration.
type Config struct {
	InstanceName string
	Port         int
	Logger       *zap.Logger
}

// Manager handles mDNS advertisement and continuous browsing.
type Manager struct {
	config  Config
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	engines chan *EngineInfo
}

// EngineInfo describes a discovered engine.
type EngineInfo struct {
	Name    string
	Host    string
	Port    int
	Version string
}

// Addr returns the host:port the engine's control API listens on.
func (e *EngineInfo) Addr() string {
	return net.JoinHostPort(e.Host, fmt.Sprintf("%d", e.Port))
}

// NewManager creates a discovery manager.
func NewManager(config Config) *Manager {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:  config,
		logger:  config.Logger,
		ctx:     ctx,
		cancel:  cancel,
		engines: make(chan *EngineInfo, 10),
	}
}

// Advertise registers this engine on the local network until Stop.
func (m *Manager) Advertise() error {
	ips, err := localIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.InstanceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		[]string{
			"version=" + version.Version,
			"api=/v1",
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	m.logger.Info("advertising engine over mdns",
		zap.String("instance", m.config.InstanceName),
		zap.Int("port", m.config.Port),
		zap.String("type", ServiceType))

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse starts continuous background browsing for engines.
func (m *Manager) Browse() error {
	go m.browseLoop()
	return nil
}

func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				info, ok := entryInfo(entry)
				if !ok {
					continue
				}

				m.logger.Debug("discovered engine",
					zap.String("name", info.Name),
					zap.String("addr", info.Addr()),
					zap.String("version", info.Version))

				select {
				case m.engines <- info:
				case <-m.ctx.Done():
					return
				}
			}
		}()

		params := &mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: browseInterval,
			Entries: entries,
		}

		if err := mdns.Query(params); err != nil {
			m.logger.Debug("mdns query failed", zap.Error(err))
		}
		close(entries)
	}
}

// Engines returns the channel of discovered engines.
func (m *Manager) Engines() <-chan *EngineInfo {
	return m.engines
}

// Stop shuts down advertisement and browsing.
func (m *Manager) Stop() {
	m.cancel()
}

// Find performs one bounded browse pass and returns every engine seen.
func Find(timeout time.Duration) ([]EngineInfo, error) {
	if timeout <= 0 {
		timeout = browseInterval
	}

	entries := make(chan *mdns.ServiceEntry, 16)
	var found []EngineInfo
	done := make(chan struct{})

	go func() {
		for entry := range entries {
			if info, ok := entryInfo(entry); ok {
				found = append(found, *info)
			}
		}
		close(done)
	}()

	params := &mdns.QueryParam{
		Service: ServiceType,
		Domain:  "local",
		Timeout: timeout,
		Entries: entries,
	}
	err := mdns.Query(params)
	close(entries)
	<-done

	if err != nil {
		return nil, fmt.Errorf("mdns query failed: %w", err)
	}
	return found, nil
}

// entryInfo converts a raw service entry, rejecting addressless ones.
func entryInfo(entry *mdns.ServiceEntry) (*EngineInfo, bool) {
	info := &EngineInfo{
		Name: strings.TrimSuffix(entry.Name, "."),
		Port: entry.Port,
	}
	switch {
	case entry.AddrV4 != nil:
		info.Host = entry.AddrV4.String()
	case entry.AddrV6 != nil:
		info.Host = entry.AddrV6.String()
	default:
		return nil, false
	}
	for _, field := range entry.InfoFields {
		if v, ok := strings.CutPrefix(field, "version="); ok {
			info.Version = v
		}
	}
	return info, true
}

// localIPs returns the machine's non-loopback IPv4 addresses.
func localIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
